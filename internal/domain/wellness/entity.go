package wellness

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type DoshaAssessment struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	PrimaryDosha   *string   `json:"primary_dosha"`
	SecondaryDosha *string   `json:"secondary_dosha"`
	CreatedAt      time.Time `json:"created_at"`
}

type WellnessPlan struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// LifestyleLog is one day of self-reported metrics. Every metric is
// optional.
type LifestyleLog struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	LogDate         *time.Time `json:"log_date"`
	SleepHours      *float64   `json:"sleep_hours"`
	EnergyLevel     *int       `json:"energy_level"`
	Mood            *int       `json:"mood"`
	ExerciseMinutes *int       `json:"exercise_minutes"`
}

type Insight struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is everything the wellness provider has for one user.
// LifestyleLogs are newest first as returned by the repository.
type Snapshot struct {
	DoshaAssessment *DoshaAssessment `json:"dosha_assessment"`
	WellnessPlans   []WellnessPlan   `json:"wellness_plans"`
	LifestyleLogs   []LifestyleLog   `json:"lifestyle_logs"`
	Insights        []Insight        `json:"insights"`
}

type Repository interface {
	LatestDoshaAssessment(ctx context.Context, userID uuid.UUID) (*DoshaAssessment, error)
	ListWellnessPlans(ctx context.Context, userID uuid.UUID) ([]WellnessPlan, error)
	ListLifestyleLogs(ctx context.Context, userID uuid.UUID) ([]LifestyleLog, error)
	ListInsights(ctx context.Context, userID uuid.UUID, limit int) ([]Insight, error)
}
