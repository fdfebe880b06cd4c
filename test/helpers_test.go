//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fitnesshub/backend/internal/auth"
	"github.com/fitnesshub/backend/internal/middleware"
)

// newUser returns a fresh user id and a bearer token for it.
func (s *IntegrationTestSuite) newUser() (uuid.UUID, string) {
	userID := uuid.New()
	token, err := auth.NewTokenVerifier(testUserTokenSecret, "fithub").Sign(userID, time.Hour)
	require.NoError(s.T(), err)
	return userID, token
}

func (s *IntegrationTestSuite) doLogin(ctx context.Context) string {
	resp, body := s.do(ctx, http.MethodPost, "/a/login", "", map[string]string{
		"username": testUsername,
		"password": testPassword,
	})
	require.Equal(s.T(), http.StatusOK, resp.StatusCode, string(body))

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(s.T(), json.Unmarshal(body, &loginResp))
	require.NotEmpty(s.T(), loginResp.Token)
	return loginResp.Token
}

// do sends the request with body encoded as JSON. A token starting with
// "admin:" is sent as the admin session header, anything else as a bearer.
func (s *IntegrationTestSuite) do(ctx context.Context, method, path, token string, body any) (*http.Response, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case len(token) > 6 && token[:6] == "admin:":
		req.Header.Set(middleware.AdminTokenHeader, token[6:])
	case token != "":
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBytes
}
