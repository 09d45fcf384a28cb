package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/WorkoutTracker/internal/middleware"
	"github.com/atinyakov/WorkoutTracker/internal/models"
	"github.com/atinyakov/WorkoutTracker/internal/server/respond"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WorkoutService defines the workout operations required by the WorkoutHandler.
// Every call is scoped to the authenticated user.
type WorkoutService interface {
	Create(ctx context.Context, userID string, in models.WorkoutInput) (*models.Workout, error)
	List(ctx context.Context, userID string) ([]models.Workout, error)
	GetByID(ctx context.Context, userID, id string) (*models.Workout, error)
	Update(ctx context.Context, userID, id string, patch models.WorkoutPatch) (*models.Workout, error)
	Delete(ctx context.Context, userID, id string) (*models.Workout, error)
}

// WorkoutHandler handles the /api/workouts endpoints. It must be mounted
// behind middleware.BearerAuth.
type WorkoutHandler struct {
	WorkoutService WorkoutService
	Logger         *zap.Logger
}

// Create handles POST /api/workouts and responds 201 with the stored record.
func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.WorkoutInput
	if !decodeBody(w, r, &in) {
		return
	}

	workout, err := h.WorkoutService.Create(r.Context(), middleware.GetUserIDFromContext(r.Context()), in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, workout)
}

// List handles GET /api/workouts.
func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.WorkoutService.List(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	respond.JSON(w, http.StatusOK, workouts)
}

// Get handles GET /api/workouts/{id}.
func (h *WorkoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workout, err := h.WorkoutService.GetByID(ctx, middleware.GetUserIDFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, workout)
}

// Update handles PATCH /api/workouts/{id}. Only the fields present in the
// body are changed.
func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.WorkoutPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	ctx := r.Context()
	workout, err := h.WorkoutService.Update(ctx, middleware.GetUserIDFromContext(ctx), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, workout)
}

// Delete handles DELETE /api/workouts/{id} and responds with the removed record.
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workout, err := h.WorkoutService.Delete(ctx, middleware.GetUserIDFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, workout)
}
