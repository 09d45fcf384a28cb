package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/WorkoutTracker/internal/common"
	"github.com/atinyakov/WorkoutTracker/internal/models"
	"github.com/lib/pq"
)

const workoutColumns = `id, title, reps, load, user_id, created_at, updated_at`

// PostgresWorkoutRepository implements workout persistence against a PostgreSQL database.
// Every query is scoped by the owning user's id.
type PostgresWorkoutRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresWorkoutRepository creates a new PostgresWorkoutRepository using the provided *sql.DB.
func NewPostgresWorkoutRepository(db *sql.DB) *PostgresWorkoutRepository {
	return &PostgresWorkoutRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (*models.Workout, error) {
	var w models.Workout
	if err := row.Scan(&w.ID, &w.Title, &w.Reps, &w.Load, &w.UserID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// notFound maps sql.ErrNoRows to common.ErrNotFound and wraps anything else.
func notFound(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// CreateWorkout inserts w. ID, UserID and timestamps must already be set.
// An owner that no longer exists is reported as common.ErrInvalidToken.
func (r *PostgresWorkoutRepository) CreateWorkout(ctx context.Context, w *models.Workout) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO workouts (id, user_id, title, reps, load, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, w.ID, w.UserID, w.Title, w.Reps, w.Load, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return fmt.Errorf("%w: owner %s does not exist", common.ErrInvalidToken, w.UserID)
		}
		return fmt.Errorf("CreateWorkout: %w", err)
	}
	return nil
}

// ListWorkouts returns all workouts owned by userID, newest first.
// The result is never nil.
func (r *PostgresWorkoutRepository) ListWorkouts(ctx context.Context, userID string) ([]models.Workout, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+workoutColumns+` FROM workouts WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ListWorkouts: %w", err)
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		workouts = append(workouts, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListWorkouts: %w", err)
	}
	return workouts, nil
}

// GetWorkout fetches the workout id owned by userID.
func (r *PostgresWorkoutRepository) GetWorkout(ctx context.Context, userID, id string) (*models.Workout, error) {
	w, err := scanWorkout(r.DB.QueryRowContext(ctx, `
		SELECT `+workoutColumns+` FROM workouts WHERE id = $1 AND user_id = $2
	`, id, userID))
	if err != nil {
		return nil, notFound("GetWorkout", err)
	}
	return w, nil
}

// UpdateWorkout applies the non-nil fields of patch and returns the stored row.
func (r *PostgresWorkoutRepository) UpdateWorkout(ctx context.Context, userID, id string, patch models.WorkoutPatch) (*models.Workout, error) {
	w, err := scanWorkout(r.DB.QueryRowContext(ctx, `
		UPDATE workouts SET
			title = COALESCE($3, title),
			reps = COALESCE($4, reps),
			load = COALESCE($5, load),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+workoutColumns,
		id, userID, patch.Title, patch.Reps, patch.Load))
	if err != nil {
		return nil, notFound("UpdateWorkout", err)
	}
	return w, nil
}

// DeleteWorkout permanently removes the workout and returns what was deleted.
func (r *PostgresWorkoutRepository) DeleteWorkout(ctx context.Context, userID, id string) (*models.Workout, error) {
	w, err := scanWorkout(r.DB.QueryRowContext(ctx, `
		DELETE FROM workouts WHERE id = $1 AND user_id = $2 RETURNING `+workoutColumns,
		id, userID))
	if err != nil {
		return nil, notFound("DeleteWorkout", err)
	}
	return w, nil
}
