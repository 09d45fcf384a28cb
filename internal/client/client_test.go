package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/atinyakov/WorkoutTracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Signup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/signup", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@example.com", creds.Email)
		assert.Equal(t, "Secr3t!pw", creds.Password)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"email":"a@example.com","token":"tok"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL, "").Signup(context.Background(), "a@example.com", "Secr3t!pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
}

func TestClient_WorkoutRequests(t *testing.T) {
	type call struct{ method, path, auth, body string }
	var (
		mu    sync.Mutex
		calls []call
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&raw)
		mu.Lock()
		calls = append(calls, call{r.Method, r.URL.Path, r.Header.Get("Authorization"), string(raw)})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet && r.URL.Path == "/api/workouts" {
			_, _ = w.Write([]byte(`[{"_id":"w1","title":"squat","reps":5,"load":80}]`))
			return
		}
		_, _ = w.Write([]byte(`{"_id":"w1","title":"squat","reps":5,"load":80}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "tok")
	ctx := context.Background()

	list, err := c.ListWorkouts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "w1", list[0].ID)

	title, reps, load := "squat", 5, 80.0
	w, err := c.CreateWorkout(ctx, models.WorkoutInput{Title: &title, Reps: &reps, Load: &load})
	require.NoError(t, err)
	assert.Equal(t, "w1", w.ID)

	_, err = c.GetWorkout(ctx, "w1")
	require.NoError(t, err)
	_, err = c.UpdateWorkout(ctx, "w1", models.WorkoutPatch{Reps: &reps})
	require.NoError(t, err)
	_, err = c.DeleteWorkout(ctx, "w1")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 5)
	want := []call{
		{http.MethodGet, "/api/workouts", "Bearer tok", ""},
		{http.MethodPost, "/api/workouts", "Bearer tok", `{"title":"squat","reps":5,"load":80}`},
		{http.MethodGet, "/api/workouts/w1", "Bearer tok", ""},
		{http.MethodPatch, "/api/workouts/w1", "Bearer tok", `{"reps":5}`},
		{http.MethodDelete, "/api/workouts/w1", "Bearer tok", ""},
	}
	assert.Equal(t, want, calls)
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantFields  []string
	}{
		{"json body", http.StatusBadRequest, `{"error":"please fill in all the fields","emptyFields":["reps"]}`, "please fill in all the fields", []string{"reps"}},
		{"plain body", http.StatusUnsupportedMediaType, "unsupported media type\n", "unsupported media type", nil},
		{"empty body", http.StatusNotFound, "", "Not Found", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "tok").GetWorkout(context.Background(), "x")

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantFields, apiErr.EmptyFields)
		})
	}
}

func TestClient_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, "").ListWorkouts(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestNewHTTPClient(t *testing.T) {
	c, err := NewHTTPClient("")
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = NewHTTPClient(filepath.Join(t.TempDir(), "missing.crt"))
	assert.ErrorContains(t, err, "failed to read CA cert")

	bad := filepath.Join(t.TempDir(), "bad.crt")
	require.NoError(t, os.WriteFile(bad, []byte("not a cert"), 0o600))
	_, err = NewHTTPClient(bad)
	assert.ErrorContains(t, err, "failed to parse CA cert")
}
