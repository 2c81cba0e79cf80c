package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/recharge-proxy/internal/domain"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/logging"
	"github.com/jsamuelsen/recharge-proxy/internal/ports"
)

// Context keys for the caller session.
const (
	ContextKeySession    = "caller_session"
	contextKeySessionKey = "caller_session_key"
)

// ErrNoSessionStore is returned by NewSessions without a store.
var ErrNoSessionStore = errors.New("session store is required")

// SessionsConfig configures caller session handling.
type SessionsConfig struct {
	Store      ports.SessionStore
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Sessions binds caller sessions to a cookie.
// The cookie value is whatever key the store hands out.
type Sessions struct {
	store      ports.SessionStore
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewSessions creates a session manager.
func NewSessions(cfg SessionsConfig) (*Sessions, error) {
	if cfg.Store == nil {
		return nil, ErrNoSessionStore
	}

	if cfg.CookieName == "" {
		cfg.CookieName = "rp_session"
	}

	return &Sessions{
		store:      cfg.Store,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
	}, nil
}

// Middleware loads the caller session named by the cookie, if any.
// A session that cannot be loaded is treated as absent.
func (s *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(s.cookieName)
		if err != nil || key == "" {
			c.Next()
			return
		}

		sess, err := s.store.Get(c.Request.Context(), key)

		switch {
		case err == nil:
			c.Set(ContextKeySession, sess)
			c.Set(contextKeySessionKey, key)
		case !domain.IsNotFound(err):
			logging.FromContext(c.Request.Context()).WarnContext(c.Request.Context(), "loading caller session failed",
				slog.Any("error", err),
			)
		}

		c.Next()
	}
}

// Save stores sess and sets the session cookie.
func (s *Sessions) Save(c *gin.Context, sess *domain.CallerSession) error {
	key, err := s.store.Set(c.Request.Context(), c.GetString(contextKeySessionKey), sess, s.ttl)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, key, int(s.ttl.Seconds()), "/", "", s.secure, true)
	c.Set(ContextKeySession, sess)
	c.Set(contextKeySessionKey, key)

	return nil
}

// Clear drops the caller session and its cookie.
func (s *Sessions) Clear(c *gin.Context) error {
	key := c.GetString(contextKeySessionKey)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, "", -1, "/", "", s.secure, true)
	c.Set(ContextKeySession, (*domain.CallerSession)(nil))
	c.Set(contextKeySessionKey, "")

	return s.store.Expire(c.Request.Context(), key)
}

// CallerSession returns the session loaded for the request, or nil.
func CallerSession(c *gin.Context) *domain.CallerSession {
	if v, ok := c.Get(ContextKeySession); ok {
		if sess, ok := v.(*domain.CallerSession); ok {
			return sess
		}
	}

	return nil
}
