//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLogin() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cases := map[string]struct {
		body               map[string]string
		expectedStatusCode int
	}{
		"good creds": {
			body:               map[string]string{"username": testUsername, "password": testPassword},
			expectedStatusCode: http.StatusOK,
		},
		"wrong password": {
			body:               map[string]string{"username": testUsername, "password": "nope"},
			expectedStatusCode: http.StatusBadRequest,
		},
		"wrong username": {
			body:               map[string]string{"username": "someone", "password": testPassword},
			expectedStatusCode: http.StatusBadRequest,
		},
		"empty password": {
			body:               map[string]string{"username": testUsername},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for name, tc := range cases {
		s.Run(name, func() {
			resp, _ := s.do(ctx, http.MethodPost, "/a/login", "", tc.body)
			assert.Equal(s.T(), tc.expectedStatusCode, resp.StatusCode)
		})
	}
}

func (s *IntegrationTestSuite) TestLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.doLogin(ctx)

	resp, _ := s.do(ctx, http.MethodGet, "/admin/analytics/events/page/1/size/5", "admin:"+token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := s.do(ctx, http.MethodPost, "/a/logout", "admin:"+token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "logged-out", string(body))

	// session is gone
	resp, _ = s.do(ctx, http.MethodGet, "/admin/analytics/events/page/1/size/5", "admin:"+token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = s.do(ctx, http.MethodPost, "/a/logout", "admin:"+token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
