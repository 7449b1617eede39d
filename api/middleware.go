package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"blogward/auth"
	"blogward/errs"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SessionCookie is the cookie carrying the bearer token. An Authorization
// header with a Bearer prefix is accepted as a fallback.
const SessionCookie = "access_token"

type authMiddleware struct {
	tokens    *auth.Tokens
	responder Responder
}

func newAuthMiddleware(tokens *auth.Tokens) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		tokens:    tokens,
		responder: NewResponder(logger),
	}
}

// require is the strict resolver: requests without a valid token fail with
// an unauthenticated error.
func (m authMiddleware) require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.resolve(r)
		if err != nil {
			m.responder.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithUserID(r.Context(), userID)))
	})
}

// optional is the lenient resolver: requests without a valid token proceed
// anonymously instead of failing.
func (m authMiddleware) optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.resolve(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithUserID(r.Context(), userID)))
	})
}

// resolve extracts and verifies the caller's token, returning the user id
// from its subject claim.
func (m authMiddleware) resolve(r *http.Request) (uint, error) {
	tokenStr := extractToken(r)
	if tokenStr == "" {
		return 0, errs.NewUnauthorizedError("missing access token")
	}

	claims, err := m.tokens.Verify(tokenStr)
	if err != nil {
		return 0, err
	}

	userID, ok := auth.Subject(claims)
	if !ok {
		return 0, errs.NewUnauthorizedError("token carries no valid subject")
	}
	return userID, nil
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

// RecoverPanics converts handler panics into 500 responses and logs the
// stack trace; 500s set by handlers are logged too.
func RecoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// AccessLogMiddleware logs every request with a generated request id and
// colors the console output by status class.
func AccessLogMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("requestId", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
