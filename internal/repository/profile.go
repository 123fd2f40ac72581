package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/zhihungchen/FittedIn/internal/model"
)

type ProfileRepository interface {
	Create(profile *model.Profile) error
	ByUserID(userID string) (*model.Profile, error)
	Update(profile *model.Profile) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *model.Profile) error {
	query := `INSERT INTO profiles (id, user_id, bio, location, pronouns, date_of_birth, height_cm, weight_kg, fitness_level, cover_photo, is_private, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(query,
		profile.ID,
		profile.UserID,
		profile.Bio,
		profile.Location,
		profile.Pronouns,
		profile.DateOfBirth,
		profile.HeightCm,
		profile.WeightKg,
		profile.FitnessLevel,
		profile.CoverPhoto,
		profile.IsPrivate,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	return err
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	profile := &model.Profile{}
	query := `SELECT * FROM profiles WHERE user_id = $1`

	err := r.db.Get(profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}

	return profile, err
}

func (r *profileRepository) Update(profile *model.Profile) error {
	query := `UPDATE profiles
	          SET bio = $1, location = $2, pronouns = $3, date_of_birth = $4, height_cm = $5, weight_kg = $6, fitness_level = $7, cover_photo = $8, is_private = $9, updated_at = $10
	          WHERE user_id = $11`

	result, err := r.db.Exec(query,
		profile.Bio,
		profile.Location,
		profile.Pronouns,
		profile.DateOfBirth,
		profile.HeightCm,
		profile.WeightKg,
		profile.FitnessLevel,
		profile.CoverPhoto,
		profile.IsPrivate,
		time.Now(),
		profile.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}
