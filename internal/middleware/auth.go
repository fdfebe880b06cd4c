package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fitnesshub/backend/internal/auth"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

const (
	AdminTokenHeader = "X-ADMIN-TOKEN"

	bearerPrefix = "Bearer "
)

type loginChecker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}

type userVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// AuthMiddlewareHandler guards two surfaces: /api/ requires a user access
// token, /admin/ requires an operator session token.
type AuthMiddlewareHandler struct {
	loginChecker         loginChecker
	userVerifier         userVerifier
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(
	loginChecker loginChecker,
	userVerifier userVerifier,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker: loginChecker,
		userVerifier: userVerifier,
		allowedPaths: map[string]bool{
			"/":        true,
			"/version": true,
			// login-logout:
			"/a/login":  true,
			"/a/logout": true,
		},
		allowedPathsPrefixes: []string{
			"/api/public/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			switch {
			case strings.HasPrefix(r.URL.Path, "/admin/"):
				h.checkAdmin(ctx, w, r, next)
			case strings.HasPrefix(r.URL.Path, "/api/"):
				h.checkUser(ctx, w, r, next)
			default:
				log.Tracef("[auth middleware] unknown surface => %s", r.URL.Path)
				http.Error(w, "authentication required", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "unknown-surface")
			}
		})
	}
}

func (h *AuthMiddlewareHandler) checkAdmin(ctx context.Context, w http.ResponseWriter, r *http.Request, next http.Handler) {
	span := trace.SpanFromContext(ctx)

	authToken := r.Header.Get(AdminTokenHeader)
	if authToken == "" {
		log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
		http.Error(w, "no can do", http.StatusUnauthorized)
		span.SetStatus(codes.Error, "missing-auth-token")
		return
	}

	isLogged, err := h.loginChecker.IsLogged(ctx, authToken)
	if err != nil {
		log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		span.SetStatus(codes.Error, "check-logged-err")
		span.RecordError(err)
		return
	}
	if !isLogged {
		log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
		http.Error(w, "no can do", http.StatusUnauthorized)
		span.SetStatus(codes.Error, "not-logged")
		return
	}

	span.SetStatus(codes.Ok, "ok")
	next.ServeHTTP(w, r)
}

func (h *AuthMiddlewareHandler) checkUser(ctx context.Context, w http.ResponseWriter, r *http.Request, next http.Handler) {
	span := trace.SpanFromContext(ctx)

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		log.Tracef("[missing bearer token] [auth middleware] unauthorized => %s", r.URL.Path)
		http.Error(w, "authentication required", http.StatusUnauthorized)
		span.SetStatus(codes.Error, "missing-bearer-token")
		return
	}

	userID, err := h.userVerifier.Verify(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
	if err != nil {
		log.Tracef("[invalid bearer token] [auth middleware] %s: %s", r.URL.Path, err)
		http.Error(w, "authentication required", http.StatusUnauthorized)
		span.SetStatus(codes.Error, "invalid-bearer-token")
		return
	}

	span.SetStatus(codes.Ok, "ok")
	next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
}
