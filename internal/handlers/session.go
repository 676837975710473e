package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/session"
)

// SessionCookie names the cookie that identifies a browser session.
const SessionCookie = "resume_session"

// SessionResolver maps the session cookie of a request to its workflow state.
type SessionResolver struct {
	cookies  *fibersession.Store
	sessions *session.Manager
}

func NewSessionResolver(sessions *session.Manager, ttl time.Duration) *SessionResolver {
	return &SessionResolver{
		cookies: fibersession.New(fibersession.Config{
			Expiration:     ttl,
			KeyLookup:      "cookie:" + SessionCookie,
			KeyGenerator:   uuid.NewString,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		}),
		sessions: sessions,
	}
}

// Resolve returns the session for the request and refreshes its cookie.
func (r *SessionResolver) Resolve(c *fiber.Ctx) (*session.Session, error) {
	sess, err := r.cookies.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	id := sess.ID()
	if err := sess.Save(); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return r.sessions.Get(id), nil
}
