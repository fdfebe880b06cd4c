//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitnesshub/backend/internal/adaptive"
	"github.com/fitnesshub/backend/internal/analytics"
	"github.com/fitnesshub/backend/internal/launcher"
	"github.com/fitnesshub/backend/internal/workouts"
)

func (s *IntegrationTestSuite) TestWorkoutsLauncherAndAdaptive() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID, token := s.newUser()

	// new users get the recommended preset
	resp, body := s.do(ctx, http.MethodGet, "/api/launcher/prediction", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var prediction launcher.Prediction
	require.NoError(t, json.Unmarshal(body, &prediction))
	assert.Equal(t, launcher.ConfidenceLow, prediction.Confidence)
	assert.Nil(t, prediction.TemplateID)

	resp, body = s.do(ctx, http.MethodPost, "/api/workouts/templates", token, workouts.SaveTemplateRequest{
		Name: "Push Day",
		Exercises: []workouts.Exercise{
			{Name: "Bench Press", MuscleGroup: "chest", Sets: 4, Reps: 8},
			{Name: "Overhead Press", MuscleGroup: "shoulders", Sets: 3, Reps: 10},
		},
		EstimatedDurationMin: 50,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var tmpl workouts.Template
	require.NoError(t, json.Unmarshal(body, &tmpl))
	assert.Equal(t, userID, tmpl.UserID)
	assert.Len(t, tmpl.Exercises, 2)

	resp, body = s.do(ctx, http.MethodPost, "/api/workouts/sessions", token, workouts.LogSessionRequest{
		TemplateID:      &tmpl.ID,
		Name:            "Push Day",
		StartedAt:       time.Now().Add(-2 * time.Hour),
		DurationSeconds: 3000,
		TotalVolumeKg:   5400,
		TotalSets:       7,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.do(ctx, http.MethodGet, "/api/workouts/templates", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var templates []workouts.Template
	require.NoError(t, json.Unmarshal(body, &templates))
	require.Len(t, templates, 1)
	assert.Equal(t, tmpl.ID, templates[0].ID)

	resp, body = s.do(ctx, http.MethodGet, "/api/launcher/alternatives?limit=3", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &templates))
	assert.Len(t, templates, 1)

	resp, body = s.do(ctx, http.MethodGet, "/api/workouts/adaptive", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var workout adaptive.Workout
	require.NoError(t, json.Unmarshal(body, &workout))
	assert.Contains(t, []adaptive.AdaptationType{adaptive.AdaptationRest, adaptive.AdaptationVolume, adaptive.AdaptationIntensity}, workout.AdaptationType)
	assert.GreaterOrEqual(t, workout.FatigueScore, 0)
	assert.LessOrEqual(t, workout.FatigueScore, 100)

	// other users never see these templates
	_, otherToken := s.newUser()
	resp, body = s.do(ctx, http.MethodGet, "/api/workouts/templates", otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &templates))
	assert.Empty(t, templates)

	// shown events are stored asynchronously and in order; the adaptive
	// request must not count as a launcher prediction shown
	adminToken := s.doLogin(ctx)
	var launcherShown, adaptiveShown int
	assert.Eventually(t, func() bool {
		resp, body := s.do(ctx, http.MethodGet, "/admin/analytics/events/page/1/size/50", "admin:"+adminToken, nil)
		if resp.StatusCode != http.StatusOK {
			return false
		}
		var list analytics.ListResponse
		if err := json.Unmarshal(body, &list); err != nil {
			return false
		}
		launcherShown, adaptiveShown = 0, 0
		for _, event := range list.Events {
			if event.UserID == nil || *event.UserID != userID {
				continue
			}
			switch event.Type {
			case analytics.EventTypeLauncherPredictionShown:
				launcherShown++
			case analytics.EventTypeAdaptiveWorkoutShown:
				adaptiveShown++
			}
		}
		return adaptiveShown > 0
	}, 5*time.Second, 100*time.Millisecond)
	assert.Equal(t, 1, adaptiveShown)
	assert.Equal(t, 1, launcherShown)
}

func (s *IntegrationTestSuite) TestWorkoutsRequireUserToken() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp, _ := s.do(ctx, http.MethodGet, "/api/workouts/templates", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(ctx, http.MethodGet, "/api/workouts/templates", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
