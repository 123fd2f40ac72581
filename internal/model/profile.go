package model

import "time"

const (
	FitnessLevelBeginner     = "beginner"
	FitnessLevelIntermediate = "intermediate"
	FitnessLevelAdvanced     = "advanced"
)

type Profile struct {
	ID           string     `db:"id"`
	UserID       string     `db:"user_id"`
	Bio          *string    `db:"bio"`
	Location     *string    `db:"location"`
	Pronouns     *string    `db:"pronouns"`
	DateOfBirth  *time.Time `db:"date_of_birth"`
	HeightCm     *int       `db:"height_cm"`
	WeightKg     *float64   `db:"weight_kg"`
	FitnessLevel *string    `db:"fitness_level"`
	CoverPhoto   *string    `db:"cover_photo"`
	IsPrivate    bool       `db:"is_private"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

type ProfileView struct {
	UserID       string     `json:"user_id"`
	Bio          *string    `json:"bio,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Pronouns     *string    `json:"pronouns,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	HeightCm     *int       `json:"height_cm,omitempty"`
	WeightKg     *float64   `json:"weight_kg,omitempty"`
	FitnessLevel *string    `json:"fitness_level,omitempty"`
	CoverPhoto   *string    `json:"cover_photo,omitempty"`
	IsPrivate    bool       `json:"is_private"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (p *Profile) View() *ProfileView {
	return &ProfileView{
		UserID:       p.UserID,
		Bio:          p.Bio,
		Location:     p.Location,
		Pronouns:     p.Pronouns,
		DateOfBirth:  p.DateOfBirth,
		HeightCm:     p.HeightCm,
		WeightKg:     p.WeightKg,
		FitnessLevel: p.FitnessLevel,
		CoverPhoto:   p.CoverPhoto,
		IsPrivate:    p.IsPrivate,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PublicView strips body metrics and birth date, which are only shown to the
// profile owner.
func (p *Profile) PublicView() *ProfileView {
	v := p.View()
	v.DateOfBirth = nil
	v.HeightCm = nil
	v.WeightKg = nil
	return v
}
