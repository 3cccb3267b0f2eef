package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oykukmnGlad/ROOTEAM/internal/middleware"
	"github.com/oykukmnGlad/ROOTEAM/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "plantcare-api"
	tokenAudience = "plantcare-client"
	tokenTTL      = 7 * 24 * time.Hour
)

// User-facing login and registration failures.
const (
	msgUsernameTaken      = "Bu ID zaten alınmış."
	msgInvalidCredentials = "Giriş başarısız. ID veya şifre yanlış."
)

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// ShowLogin handles GET /login
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	return s.render(c, "login", fiber.Map{"Title": "Giriş"})
}

// LoginForm handles POST /login
func (s *Server) LoginForm(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}

	user, err := s.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if models.HasCode(err, models.CodeInvalidCredentials) {
			return s.render(c, "login", fiber.Map{
				"Title": "Giriş",
				"Flash": msgInvalidCredentials,
				"Form":  map[string]string{"username": req.Username},
			})
		}
		return err
	}

	if err := s.startSession(c, user); err != nil {
		return err
	}
	return c.Redirect("/")
}

// ShowRegister handles GET /register
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	return s.render(c, "register", fiber.Map{"Title": "Kayıt"})
}

// RegisterForm handles POST /register. A new account is logged in at once.
func (s *Server) RegisterForm(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}

	user, err := s.authService.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		var flash string
		switch {
		case models.HasCode(err, models.CodeUsernameTaken):
			flash = msgUsernameTaken
		case models.HasCode(err, models.CodeValidation):
			flash = err.Error()
		default:
			return err
		}
		return s.render(c, "register", fiber.Map{
			"Title": "Kayıt",
			"Flash": flash,
			"Form":  map[string]string{"username": req.Username},
		})
	}

	if err := s.startSession(c, user); err != nil {
		return err
	}
	return c.Redirect("/")
}

// LogoutPage handles GET /logout
func (s *Server) LogoutPage(c *fiber.Ctx) error {
	if err := s.endSession(c); err != nil {
		return err
	}
	return c.Redirect("/login")
}

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return s.respondWithToken(c, fiber.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return s.respondWithToken(c, fiber.StatusOK, user)
}

func (s *Server) respondWithToken(c *fiber.Ctx, status int, user *models.User) error {
	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(tokenTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// AuthRequired returns the bearer token middleware for the JSON API.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""
		if parts := strings.Fields(c.Get(fiber.HeaderAuthorization)); len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			return []byte(s.config.JWTSecret), nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithAudience(tokenAudience),
		)
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		sub, err := token.Claims.GetSubject()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil || userID == 0 {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		c.Locals("userID", uint(userID))
		c.SetUserContext(context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID)))
		return c.Next()
	}
}
