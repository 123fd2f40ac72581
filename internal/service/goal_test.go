package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/repository"
	"github.com/zhihungchen/FittedIn/internal/validation"
)

func newGoalInput() GoalInput {
	return GoalInput{
		Title:       strPtr("Run 100 km"),
		Category:    strPtr("cardio"),
		TargetValue: floatPtr(100),
		Unit:        strPtr("km"),
	}
}

func TestCreateGoal(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	input := newGoalInput()
	input.Description = strPtr("  spring training block ")
	input.Priority = strPtr(model.GoalPriorityHigh)
	input.TargetDate = timePtr(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))

	goal, err := env.goals.Create(alice.ID, input)
	require.NoError(t, err)

	assert.Equal(t, "Run 100 km", goal.Title)
	assert.Equal(t, "cardio", goal.Category)
	assert.Equal(t, model.GoalStatusActive, goal.Status)
	assert.Equal(t, model.GoalPriorityHigh, goal.Priority)
	assert.Equal(t, float64(0), goal.CurrentValue)
	require.NotNil(t, goal.Description)
	assert.Equal(t, "spring training block", *goal.Description)

	count, err := env.activities.CountByType(alice.ID, model.ActivityGoalCreated)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateGoalCountsCharactersNotBytes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	// A title at the character limit passes even in a multi-byte script.
	input := newGoalInput()
	input.Title = strPtr(strings.Repeat("跑", validation.GoalTitleMax))
	_, err := env.goals.Create(alice.ID, input)
	require.NoError(t, err)

	input = newGoalInput()
	input.Title = strPtr(strings.Repeat("跑", validation.GoalTitleMax+1))
	_, err = env.goals.Create(alice.ID, input)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateGoalValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	cases := []struct {
		name   string
		mutate func(*GoalInput)
	}{
		{"missing title", func(in *GoalInput) { in.Title = nil }},
		{"blank title", func(in *GoalInput) { in.Title = strPtr("   ") }},
		{"missing category", func(in *GoalInput) { in.Category = nil }},
		{"unknown category", func(in *GoalInput) { in.Category = strPtr("underwater basket weaving") }},
		{"missing target", func(in *GoalInput) { in.TargetValue = nil }},
		{"non-positive target", func(in *GoalInput) { in.TargetValue = floatPtr(0) }},
		{"bad priority", func(in *GoalInput) { in.Priority = strPtr("urgent") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := newGoalInput()
			tc.mutate(&input)
			_, err := env.goals.Create(alice.ID, input)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestGoalOwnershipScoping(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	goal, err := env.goals.Create(alice.ID, newGoalInput())
	require.NoError(t, err)

	// Another user's goal reads as missing, never as forbidden.
	_, err = env.goals.ByID(bob.ID, goal.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = env.goals.Update(bob.ID, goal.ID, GoalInput{Title: strPtr("hijacked")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = env.goals.Delete(bob.ID, goal.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGoalsFilter(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	run, err := env.goals.Create(alice.ID, newGoalInput())
	require.NoError(t, err)

	sleepInput := newGoalInput()
	sleepInput.Title = strPtr("Sleep 8 hours")
	sleepInput.Category = strPtr("sleep")
	sleep, err := env.goals.Create(alice.ID, sleepInput)
	require.NoError(t, err)

	_, err = env.goals.Update(alice.ID, sleep.ID, GoalInput{Status: strPtr(model.GoalStatusPaused)})
	require.NoError(t, err)

	all, err := env.goals.Goals(alice.ID, repository.GoalFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := env.goals.Goals(alice.ID, repository.GoalFilter{Status: model.GoalStatusActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, run.ID, active[0].ID)

	cardio, err := env.goals.Goals(alice.ID, repository.GoalFilter{Category: "cardio"})
	require.NoError(t, err)
	require.Len(t, cardio, 1)
	assert.Equal(t, run.ID, cardio[0].ID)
}

func TestApplyProgress(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	goal, err := env.goals.Create(alice.ID, newGoalInput())
	require.NoError(t, err)

	updated, err := env.goals.ApplyProgress(goal.ID, alice.ID, 40, "first week")
	require.NoError(t, err)
	assert.Equal(t, float64(40), updated.CurrentValue)
	assert.Equal(t, model.GoalStatusActive, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "first week", *updated.Notes)

	progress, err := env.activities.CountByType(alice.ID, model.ActivityGoalProgress)
	require.NoError(t, err)
	assert.Equal(t, 1, progress)

	// The progress payload records the transition.
	history, err := env.activities.History(alice.ID, 10, 0)
	require.NoError(t, err)
	var entry *model.Activity
	for _, a := range history {
		if a.Type == model.ActivityGoalProgress {
			entry = a
		}
	}
	require.NotNil(t, entry)
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(entry.Data), &data))
	assert.Equal(t, float64(0), data["previous_value"])
	assert.Equal(t, float64(40), data["new_value"])
}

func TestApplyProgressCompletes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	goal, err := env.goals.Create(alice.ID, newGoalInput())
	require.NoError(t, err)

	updated, err := env.goals.ApplyProgress(goal.ID, alice.ID, 100, "")
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusCompleted, updated.Status)

	completed, err := env.activities.CountByType(alice.ID, model.ActivityGoalCompleted)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	progress, err := env.activities.CountByType(alice.ID, model.ActivityGoalProgress)
	require.NoError(t, err)
	assert.Equal(t, 0, progress)
}

func TestApplyProgressDoesNotClamp(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	goal, err := env.goals.Create(alice.ID, newGoalInput())
	require.NoError(t, err)

	updated, err := env.goals.ApplyProgress(goal.ID, alice.ID, 130, "")
	require.NoError(t, err)
	assert.Equal(t, float64(130), updated.CurrentValue)
	assert.Equal(t, model.GoalStatusCompleted, updated.Status)
}

func TestApplyProgressPerCall(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	goal, err := env.goals.Create(alice.ID, newGoalInput())
	require.NoError(t, err)

	_, err = env.goals.ApplyProgress(goal.ID, alice.ID, 30, "")
	require.NoError(t, err)
	_, err = env.goals.ApplyProgress(goal.ID, alice.ID, 30, "")
	require.NoError(t, err)

	// Exactly one activity per successful call, even when the value repeats.
	progress, err := env.activities.CountByType(alice.ID, model.ActivityGoalProgress)
	require.NoError(t, err)
	assert.Equal(t, 2, progress)
}

func TestApplyProgressAfterCompletion(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	goal, err := env.goals.Create(alice.ID, newGoalInput())
	require.NoError(t, err)

	_, err = env.goals.ApplyProgress(goal.ID, alice.ID, 100, "")
	require.NoError(t, err)

	// Further updates on a completed goal stay ordinary progress.
	updated, err := env.goals.ApplyProgress(goal.ID, alice.ID, 110, "")
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusCompleted, updated.Status)

	completed, err := env.activities.CountByType(alice.ID, model.ActivityGoalCompleted)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	progress, err := env.activities.CountByType(alice.ID, model.ActivityGoalProgress)
	require.NoError(t, err)
	assert.Equal(t, 1, progress)
}

func TestApplyProgressValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	goal, err := env.goals.Create(alice.ID, newGoalInput())
	require.NoError(t, err)

	_, err = env.goals.ApplyProgress(goal.ID, alice.ID, -5, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = env.goals.ApplyProgress("missing-goal", alice.ID, 10, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
