package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/atinyakov/WorkoutTracker/internal/common"
	"github.com/atinyakov/WorkoutTracker/internal/models"
	"github.com/google/uuid"
)

// WorkoutRepository defines the persistence operations needed by the WorkoutService.
// Every method is scoped by the owning user's id.
type WorkoutRepository interface {
	// CreateWorkout stores a fully populated workout.
	CreateWorkout(ctx context.Context, w *models.Workout) error
	// ListWorkouts returns the user's workouts, newest first.
	ListWorkouts(ctx context.Context, userID string) ([]models.Workout, error)
	// GetWorkout fetches a single workout or common.ErrNotFound.
	GetWorkout(ctx context.Context, userID, id string) (*models.Workout, error)
	// UpdateWorkout applies the non-nil patch fields or returns common.ErrNotFound.
	UpdateWorkout(ctx context.Context, userID, id string, patch models.WorkoutPatch) (*models.Workout, error)
	// DeleteWorkout removes a workout or returns common.ErrNotFound.
	DeleteWorkout(ctx context.Context, userID, id string) (*models.Workout, error)
}

// WorkoutService implements the workout CRUD rules.
type WorkoutService struct {
	repo WorkoutRepository
	now  func() time.Time
}

// NewWorkoutService constructs a WorkoutService with the provided WorkoutRepository.
func NewWorkoutService(repo WorkoutRepository) *WorkoutService {
	return &WorkoutService{repo: repo, now: time.Now}
}

// Create validates in and stores a new workout owned by userID.
func (s *WorkoutService) Create(ctx context.Context, userID string, in models.WorkoutInput) (*models.Workout, error) {
	var empty []string
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		empty = append(empty, "title")
	}
	if in.Reps == nil {
		empty = append(empty, "reps")
	}
	if in.Load == nil {
		empty = append(empty, "load")
	}
	if len(empty) > 0 {
		return nil, common.NewValidationError("please fill in all the fields", empty...)
	}

	if err := validateFields(models.WorkoutPatch{Title: in.Title, Reps: in.Reps, Load: in.Load}); err != nil {
		return nil, err
	}

	// postgres keeps microseconds; truncate so the returned record matches a later read
	now := s.now().UTC().Truncate(time.Microsecond)
	w := &models.Workout{
		ID:        uuid.NewString(),
		Title:     *in.Title,
		Reps:      *in.Reps,
		Load:      *in.Load,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateWorkout(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// List returns every workout owned by userID.
func (s *WorkoutService) List(ctx context.Context, userID string) ([]models.Workout, error) {
	workouts, err := s.repo.ListWorkouts(ctx, userID)
	if err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	return workouts, nil
}

// GetByID returns the workout id if userID owns it.
func (s *WorkoutService) GetByID(ctx context.Context, userID, id string) (*models.Workout, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetWorkout(ctx, userID, id)
}

// Update merges the supplied fields into the workout and returns the result.
func (s *WorkoutService) Update(ctx context.Context, userID, id string, patch models.WorkoutPatch) (*models.Workout, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, common.NewValidationError("no fields to update")
	}
	if err := validateFields(patch); err != nil {
		return nil, err
	}
	return s.repo.UpdateWorkout(ctx, userID, id, patch)
}

// Delete permanently removes the workout and returns the removed record.
func (s *WorkoutService) Delete(ctx context.Context, userID, id string) (*models.Workout, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.DeleteWorkout(ctx, userID, id)
}

// parseID canonicalizes id; malformed ids cannot exist, so they are not found.
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", common.ErrNotFound
	}
	return parsed.String(), nil
}

func validateFields(p models.WorkoutPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return common.NewValidationError("title must not be empty")
	}
	if p.Reps != nil && *p.Reps <= 0 {
		return common.NewValidationError("reps must be a positive integer")
	}
	// reps is stored as a 32-bit integer column
	if p.Reps != nil && int64(*p.Reps) > math.MaxInt32 {
		return common.NewValidationError("reps is too large")
	}
	if p.Load != nil && *p.Load < 0 {
		return common.NewValidationError("load must not be negative")
	}
	return nil
}
