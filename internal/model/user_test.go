package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserViewNeverLeaksPasswordHash(t *testing.T) {
	hash := "$2a$10$secret"
	user := &User{
		ID:           "u1",
		Email:        "alice@test.local",
		PasswordHash: &hash,
		DisplayName:  "alice",
	}

	raw, err := json.Marshal(user.View())
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "secret"))
	assert.True(t, strings.Contains(string(raw), "alice@test.local"))

	raw, err = json.Marshal(user.PublicView())
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "secret"))
	assert.False(t, strings.Contains(string(raw), "alice@test.local"))
}

func TestProfilePublicViewStripsBodyMetrics(t *testing.T) {
	height := 180
	weight := 75.0
	profile := &Profile{UserID: "u1", HeightCm: &height, WeightKg: &weight}

	public := profile.PublicView()
	assert.Nil(t, public.HeightCm)
	assert.Nil(t, public.WeightKg)
	assert.Nil(t, public.DateOfBirth)

	own := profile.View()
	require.NotNil(t, own.HeightCm)
	assert.Equal(t, 180, *own.HeightCm)
}
