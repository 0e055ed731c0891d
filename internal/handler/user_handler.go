package handler

import (
	"errors"
	"net/http"
	"time"

	"backoffice-service/internal/model"
	"backoffice-service/internal/pagination"
	"backoffice-service/internal/validate"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// adminUserID pins the /api/admin endpoints to the single admin record; the
// path id is accepted but ignored. Newly created products are attributed to
// the same record.
const adminUserID uint = 1

type userListItem struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsers returns a paginated id/name/email projection of all users
func ListUsers(c echo.Context) error {
	log := logger.FromContext(c)

	params := pagination.FromContext(c)
	query := database.GetDB().Model(&model.User{}).Select("id", "name", "email")

	var items []userListItem
	defer prometheus.TrackDBOperation("query")(time.Now())
	page, err := pagination.Paginate(query, params, &items)
	if err != nil {
		log.Error("Failed to list users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve users"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":         items,
		"current_page": page.CurrentPage,
		"total":        page.Total,
	})
}

// GetUser returns one user by id
func GetUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var user model.User
	result := database.GetDB().First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("User not found", zap.String("user_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		log.Error("Failed to load user",
			zap.String("user_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve user"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// UpdateUser updates a user's name, email and optionally password
func UpdateUser(c echo.Context) error {
	return updateUserRecord(c, c.Param("id"), "email")
}

// GetAdmin returns the admin record regardless of the path id
func GetAdmin(c echo.Context) error {
	log := logger.FromContext(c)

	var user model.User
	result := database.GetDB().First(&user, adminUserID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Admin record not found")
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		log.Error("Failed to load admin record", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve user"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Email,
	})
}

// UpdateAdmin updates the admin record regardless of the path id. The admin
// front end sends the email under "username".
func UpdateAdmin(c echo.Context) error {
	return updateUserRecord(c, "", "username")
}

// updateUserRecord is the shared update path for /api/users/{id} and
// /api/admin/{id}. emailField names the request key carrying the email
// ("email" for users, "username" for the admin form) and doubles as the
// response key for it. An empty id targets the fixed admin record.
func updateUserRecord(c echo.Context, id string, emailField string) error {
	log := logger.FromContext(c)

	var user model.User
	var result *gorm.DB
	if id == "" {
		result = database.GetDB().First(&user, adminUserID)
	} else {
		result = database.GetDB().First(&user, "id = ?", id)
	}
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("User not found for update", zap.String("user_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"status":  "error",
				"message": "User not found",
			})
		}
		log.Error("Failed to load user for update",
			zap.String("user_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update user"})
	}

	var data map[string]interface{}
	if err := c.Bind(&data); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if name, ok := data["name"]; ok {
		user.Name = asString(name)
	}
	newEmail := user.Email
	if email, ok := data[emailField]; ok {
		newEmail = asString(email)
	}

	// Reject an email already used by a different user before touching the
	// stored record, so a conflict leaves the original email in place.
	var count int64
	defer prometheus.TrackDBOperation("query")(time.Now())
	countResult := database.GetDB().Model(&model.User{}).
		Where("email = ? AND id != ?", newEmail, user.ID).
		Count(&count)
	if countResult.Error != nil {
		log.Error("Failed to check email uniqueness",
			zap.Uint("user_id", user.ID),
			zap.Error(countResult.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update user"})
	}
	if count > 0 {
		log.Warn("Email already in use",
			zap.Uint("user_id", user.ID),
			zap.String("email", newEmail))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"status":  "error",
			"message": "This Email already exists. Please enter another one.",
		})
	}
	user.Email = newEmail

	// Password is re-hashed only when a non-empty new one is supplied
	if password := asString(data["password"]); password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update user"})
		}
		user.Password = string(hashed)
	}

	if violations := checkUserFields(&user); len(violations) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"message": validate.Messages(violations),
		})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&user); result.Error != nil {
		log.Error("Failed to update user",
			zap.Uint("user_id", user.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update user"})
	}

	prometheus.ResourceOperationCounter.WithLabelValues("user", "update").Inc()
	log.Info("User updated", zap.Uint("user_id", user.ID))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User updated successfully",
		"user": echo.Map{
			"id":       user.ID,
			"name":     user.Name,
			emailField: user.Email,
		},
	})
}

// checkUserFields validates the resulting record, not the raw payload, so a
// partial update that leaves required fields intact passes.
func checkUserFields(user *model.User) []validate.Violation {
	return validate.User.Check(map[string]interface{}{
		"name":  user.Name,
		"email": user.Email,
	})
}
