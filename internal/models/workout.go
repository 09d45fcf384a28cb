package models

import "time"

// Workout is a single exercise entry owned by one user.
type Workout struct {
	// ID is the server-assigned identifier.
	ID string `json:"_id"`
	// Title names the exercise.
	Title string `json:"title"`
	// Reps is the number of repetitions; always positive.
	Reps int `json:"reps"`
	// Load is the weight used, never negative.
	Load float64 `json:"load"`
	// UserID references the owning user.
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkoutInput is the body of a create request. Pointer fields distinguish
// a missing value from a zero value.
type WorkoutInput struct {
	Title *string  `json:"title"`
	Reps  *int     `json:"reps"`
	Load  *float64 `json:"load"`
}

// WorkoutPatch holds the fields supplied to a partial update. Nil fields are
// left untouched.
type WorkoutPatch struct {
	Title *string  `json:"title,omitempty"`
	Reps  *int     `json:"reps,omitempty"`
	Load  *float64 `json:"load,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p WorkoutPatch) Empty() bool {
	return p.Title == nil && p.Reps == nil && p.Load == nil
}
