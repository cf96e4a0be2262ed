// Package session provides cookie-backed sessions for HTTP requests.
// The cookie carries an HMAC-signed JWT holding an opaque session ID; the
// session data itself lives in a pluggable store. Sessions are lazy: no
// cookie is issued and nothing is written to the store until a handler
// explicitly modifies the session.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/homesite/internal/logger"
	"github.com/patric-chuzhbe/homesite/internal/store"
)

// TTL is the session lifetime. The cookie expiry and the store record
// lifetime both derive from it; the store TTL is refreshed on save.
const TTL = 90 * 24 * time.Hour

// Claims is the JWT payload stored in the session cookie.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
}

// ContextKey is a custom type for storing values in context to avoid collisions.
type ContextKey string

const sessionContextKey ContextKey = "session"

// Session is the per-request view of one visitor's session. It is not
// safe for concurrent use; each request owns its instance.
type Session struct {
	id      string
	data    store.Data
	existed bool
	dirty   bool
	cleared bool
}

// Get returns the value stored under key, or "" when absent.
func (s *Session) Get(key string) string {
	return s.data[key]
}

// Set stores value under key and marks the session for persistence.
func (s *Session) Set(key, value string) {
	s.data[key] = value
	s.dirty = true
	s.cleared = false
}

// Clear empties the session and marks its store record for destruction.
func (s *Session) Clear() {
	s.data = store.Data{}
	s.dirty = false
	s.cleared = true
}

// FromContext returns the request's session, or nil when the middleware
// did not run.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey).(*Session)
	return sess
}

// Manager loads sessions from cookies and persists modified ones.
type Manager struct {
	store         store.Store
	cookieName    string
	signingSecret []byte
	secureCookies bool
}

// New creates a Manager persisting sessions in the given store.
// secureCookies should mirror production mode.
func New(
	sessionStore store.Store,
	cookieName string,
	signingSecret []byte,
	secureCookies bool,
) *Manager {
	return &Manager{
		store:         sessionStore,
		cookieName:    cookieName,
		signingSecret: signingSecret,
		secureCookies: secureCookies,
	}
}

// Middleware attaches a session to the request context and, once the
// handler starts writing the response, persists the session and issues
// the cookie if the handler modified it.
func (m *Manager) Middleware(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		sess := m.load(request)

		ctx := context.WithValue(request.Context(), sessionContextKey, sess)
		fw := &finalizingResponseWriter{
			ResponseWriter: response,
			finalize: func() {
				m.finalize(request.Context(), response, sess)
			},
		}

		h.ServeHTTP(fw, request.WithContext(ctx))

		// Handlers that never write still get their session persisted.
		fw.runFinalize()
	}

	return http.HandlerFunc(middleware)
}

func (m *Manager) load(request *http.Request) *Session {
	fresh := &Session{
		id:   uuid.NewString(),
		data: store.Data{},
	}

	cookie, err := request.Cookie(m.cookieName)
	if err != nil {
		return fresh
	}

	sessionID, err := m.parseSessionID(cookie.Value)
	if err != nil {
		logger.Log.Debugln("discarding unparseable session cookie:", zap.Error(err))
		return fresh
	}

	data, found, err := m.store.Get(request.Context(), sessionID)
	if err != nil {
		logger.Log.Debugln("error calling the `m.store.Get()`:", zap.Error(err))
		return fresh
	}
	if !found {
		return fresh
	}

	return &Session{
		id:      sessionID,
		data:    data,
		existed: true,
	}
}

func (m *Manager) finalize(ctx context.Context, response http.ResponseWriter, sess *Session) {
	switch {
	case sess.dirty && len(sess.data) > 0:
		if err := m.store.Save(ctx, sess.id, sess.data, TTL); err != nil {
			logger.Log.Debugln("error calling the `m.store.Save()`:", zap.Error(err))
			return
		}

		token, err := m.buildJWTString(sess.id)
		if err != nil {
			logger.Log.Debugln("error calling the `m.buildJWTString()`:", zap.Error(err))
			return
		}

		http.SetCookie(response, m.sessionCookie(token, int(TTL.Seconds())))

	case sess.cleared && sess.existed:
		if err := m.store.Delete(ctx, sess.id); err != nil {
			logger.Log.Debugln("error calling the `m.store.Delete()`:", zap.Error(err))
			return
		}

		http.SetCookie(response, m.sessionCookie("", -1))
	}
}

func (m *Manager) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secureCookies,
	}
}

func (m *Manager) parseSessionID(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.signingSecret, nil
		},
	)
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("invalid session token")
	}

	return claims.SessionID, nil
}

func (m *Manager) buildJWTString(sessionID string) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
		},
		SessionID: sessionID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(m.signingSecret)
}

type finalizingResponseWriter struct {
	http.ResponseWriter
	finalize  func()
	finalized bool
}

func (w *finalizingResponseWriter) runFinalize() {
	if w.finalized {
		return
	}
	w.finalized = true
	w.finalize()
}

// WriteHeader persists the session before the header is flushed, since
// cookies cannot be added afterwards.
func (w *finalizingResponseWriter) WriteHeader(statusCode int) {
	w.runFinalize()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *finalizingResponseWriter) Write(b []byte) (int, error) {
	w.runFinalize()
	return w.ResponseWriter.Write(b)
}
