package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/avlasov/fileshare/internal/common"
	"github.com/avlasov/fileshare/internal/server/policy"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// SubjectFromContext returns the authenticated subject id injected by the
// token guard, or false when the request is anonymous.
func SubjectFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != policy.Anonymous
}

// bearerToken extracts the token from the Authorization header.
// Returns ErrTokenMissing when no header is present and ErrTokenMalformed
// when the header does not carry a bearer scheme.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if header == "" {
		return "", common.ErrTokenMissing
	}
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return "", common.ErrTokenMalformed
	}
	return strings.TrimPrefix(header, common.BearerPrefix), nil
}

// requireAuth verifies the bearer token and injects the subject id into the
// request context. Any verification failure ends the request with 401.
func (s *HTTPServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		userID, err := s.tokens.Verify(tokenString)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalAuth behaves like requireAuth except that an absent token yields
// an anonymous request instead of 401. A token that is present but invalid
// is still rejected.
func (s *HTTPServer) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if errors.Is(err, common.ErrTokenMissing) {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		userID, err := s.tokens.Verify(tokenString)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
