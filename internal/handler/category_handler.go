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
	"gorm.io/gorm"
)

type categoryListItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ListCategories returns a paginated id/name projection of all categories
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	params := pagination.FromContext(c)
	query := database.GetDB().Model(&model.Category{}).Select("id", "name")

	var items []categoryListItem
	defer prometheus.TrackDBOperation("query")(time.Now())
	page, err := pagination.Paginate(query, params, &items)
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve categories"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":         items,
		"current_page": page.CurrentPage,
		"total":        page.Total,
	})
}

// GetCategory returns one category by id
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var category model.Category
	result := database.GetDB().First(&category, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Category not found", zap.String("category_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to load category",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve category"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":   category.ID,
		"name": category.Name,
	})
}

// CreateCategory adds a new category
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	var data map[string]interface{}
	if err := c.Bind(&data); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if violations := validate.Category.Check(data); len(violations) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"message": validate.Messages(violations),
		})
	}

	category := model.Category{
		Name:        asString(data["name"]),
		Description: asString(data["description"]),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&category); result.Error != nil {
		log.Error("Failed to create category", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create category"})
	}

	prometheus.ResourceOperationCounter.WithLabelValues("category", "create").Inc()
	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))

	return c.JSON(http.StatusOK, echo.Map{
		"category": echo.Map{"id": category.ID, "name": category.Name},
		"message":  "Category created successfully",
	})
}

// UpdateCategory updates an existing category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var category model.Category
	result := database.GetDB().First(&category, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Category not found for update", zap.String("category_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to load category",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve category"})
	}

	var data map[string]interface{}
	if err := c.Bind(&data); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if violations := validate.Category.Check(data); len(violations) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"message": validate.Messages(violations),
		})
	}

	category.Name = asString(data["name"])
	if description, ok := data["description"]; ok {
		category.Description = asString(description)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&category); result.Error != nil {
		log.Error("Failed to update category",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update category"})
	}

	prometheus.ResourceOperationCounter.WithLabelValues("category", "update").Inc()
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Category updated successfully",
	})
}

// DeleteCategory removes a category. Products referencing it keep their
// now-dangling category id; there is no cascade guard.
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var category model.Category
	result := database.GetDB().First(&category, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Category not found for deletion", zap.String("category_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to load category",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve category"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&category); result.Error != nil {
		log.Error("Failed to delete category",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete category"})
	}

	prometheus.ResourceOperationCounter.WithLabelValues("category", "delete").Inc()
	log.Info("Category deleted", zap.String("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Category deleted successfully",
	})
}
