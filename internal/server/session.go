package server

import (
	"log/slog"

	"github.com/oykukmnGlad/ROOTEAM/internal/cache"
	"github.com/oykukmnGlad/ROOTEAM/internal/config"
	"github.com/oykukmnGlad/ROOTEAM/internal/middleware"
	"github.com/oykukmnGlad/ROOTEAM/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
)

const (
	sessionCookie   = "plantcare_session"
	sessionUserKey  = "user_id"
	sessionFlashKey = "flash"
)

// newSessionStore keeps sessions in Redis when a client is available and
// in process memory otherwise.
func newSessionStore(cfg *config.Config, client *redis.Client) *session.Store {
	sc := session.Config{
		Expiration:     cfg.SessionTTL(),
		KeyLookup:      "cookie:" + sessionCookie,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: "Lax",
	}
	if client != nil {
		sc.Storage = cache.NewSessionStorage(client)
	}
	return session.New(sc)
}

// LoginRequired redirects anonymous visitors to the login page and
// exposes the session user to handlers.
func (s *Server) LoginRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.sessions.Get(c)
		if err != nil {
			return err
		}

		userID, ok := sess.Get(sessionUserKey).(uint)
		if !ok {
			return c.Redirect("/login")
		}

		user, err := s.authService.GetUser(c.UserContext(), userID)
		if err != nil {
			if models.HasCode(err, models.CodeNotFound) {
				// Account vanished behind a live session.
				_ = sess.Destroy()
				return c.Redirect("/login")
			}
			return err
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)
		c.SetUserContext(middleware.WithUserID(c.UserContext(), user.ID))
		return c.Next()
	}
}

// startSession binds the user to a fresh session id.
func (s *Server) startSession(c *fiber.Ctx, user *models.User) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserKey, user.ID)
	return sess.Save()
}

func (s *Server) endSession(c *fiber.Ctx) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// setFlash stores a one-shot message shown on the next rendered page.
func (s *Server) setFlash(c *fiber.Ctx, message string) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "flash not stored", slog.String("error", err.Error()))
		return
	}
	sess.Set(sessionFlashKey, message)
	if err := sess.Save(); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "flash not stored", slog.String("error", err.Error()))
	}
}

func (s *Server) popFlash(c *fiber.Ctx) string {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return ""
	}
	message, ok := sess.Get(sessionFlashKey).(string)
	if !ok {
		return ""
	}
	sess.Delete(sessionFlashKey)
	if err := sess.Save(); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "flash not cleared", slog.String("error", err.Error()))
	}
	return message
}
