package auth

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SessionChecker confirms that a session named in a token is still open
type SessionChecker interface {
	Touch(sessionID string) error
}

// Middleware handles authentication for HTTP requests
type Middleware struct {
	tokens   *TokenManager
	sessions SessionChecker
	logger   *zap.Logger
}

// NewMiddleware creates a new authentication middleware. sessions may be
// nil, in which case any correctly signed token is accepted.
func NewMiddleware(tokens *TokenManager, sessions SessionChecker, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

// Authenticate rejects requests without a valid bearer token for an open session
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Debug("missing authorization header", zap.String("path", r.URL.Path))
			http.Error(w, "Unauthorized: missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "Unauthorized: invalid authorization header format", http.StatusUnauthorized)
			return
		}

		userCtx, err := m.tokens.Validate(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}

		if m.sessions != nil {
			if err := m.sessions.Touch(userCtx.SessionID); err != nil {
				m.logger.Info("token refers to a closed session",
					zap.String("session", userCtx.SessionID),
					zap.Error(err),
				)
				http.Error(w, "Unauthorized: session expired", http.StatusUnauthorized)
				return
			}
		}

		m.logger.Debug("request authenticated",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("user", userCtx.Username),
			zap.String("session", userCtx.SessionID),
			zap.Duration("auth_duration", time.Since(start)),
		)

		ctx := WithUserContext(r.Context(), userCtx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
