package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nguyensartoro/property-management-system-backend/internal/security"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

type contextKey string

const ContextKeySubject = contextKey("subject")

// AuthMiddleware validates the Bearer token and stores the resolved
// subject in the request context. Missing or invalid tokens get 401
// before any handler runs.
func AuthMiddleware(tokens *security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := extractBearerToken(r)
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthenticated, "Missing bearer token", nil, nil,
				)
				return
			}

			subject, err := tokens.Parse(tokenStr)
			if err != nil {
				utils.HandleAppError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the authenticated subject, or nil on
// unauthenticated paths.
func SubjectFromContext(ctx context.Context) *security.Subject {
	subject, _ := ctx.Value(ContextKeySubject).(*security.Subject)
	return subject
}

func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
