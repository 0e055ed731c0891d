package handler

import (
	"errors"
	"net/http"
	"time"

	"backoffice-service/internal/auth"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Login authenticates an admin and issues a bearer token.
//
// The login contract returns HTTP 200 for every authentication outcome;
// failures carry an errors body instead of a 4xx status. The front end reads
// the body, not the status. The status for each case is decided here and
// nowhere else.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	gate := auth.NewGate(auth.NewGormStore(database.GetDB()))

	defer prometheus.TrackDBOperation("query")(time.Now())
	session, err := gate.Authenticate(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			log.Warn("Login for unknown user", zap.String("username", req.Username))
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusOK, echo.Map{
				"errors": echo.Map{"message": "User not found"},
			})
		case errors.Is(err, auth.ErrForbidden):
			log.Warn("Login without admin role", zap.String("username", req.Username))
			prometheus.RecordAuthError("forbidden_role")
			return c.JSON(http.StatusOK, echo.Map{
				"errors": echo.Map{"message": "You are not authorized to access this resource"},
			})
		case errors.Is(err, auth.ErrInvalidCredentials):
			log.Warn("Login with invalid password", zap.String("username", req.Username))
			prometheus.RecordAuthError("invalid_password")
			return c.JSON(http.StatusOK, echo.Map{
				"errors": echo.Map{"message": "Invalid credentials"},
			})
		default:
			log.Error("Login failed", zap.Error(err))
			prometheus.RecordAuthError("internal")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
	}

	log.Info("User logged in", zap.String("username", req.Username))
	return c.JSON(http.StatusOK, echo.Map{
		"username": session.Name,
		"token":    session.Token,
		"message":  "You have successfully logged in",
	})
}
