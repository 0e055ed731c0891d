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

// productRow is the canonical joined projection returned by every product
// read path. Image stays raw here; decoding happens once, in productJSON.
type productRow struct {
	ID            uint
	Title         string
	Description   string
	ShortNotes    string
	Price         float64
	DiscountPrice float64
	Quantity      int
	CategoryID    *uint
	Category      *string
	Image         string
}

func productQuery() *gorm.DB {
	return database.GetDB().
		Table("products AS p").
		Select("p.id, p.title, p.description, p.short_notes, p.price, p.discount_price, p.quantity, c.id AS category_id, c.name AS category, p.image").
		Joins("LEFT JOIN categories c ON c.id = p.category_id")
}

func productJSON(row productRow) echo.Map {
	images := model.DecodeImageColumn(row.Image)
	if images == nil {
		images = []string{}
	}
	return echo.Map{
		"id":             row.ID,
		"title":          row.Title,
		"description":    row.Description,
		"short_notes":    row.ShortNotes,
		"price":          row.Price,
		"discount_price": row.DiscountPrice,
		"quantity":       row.Quantity,
		"category_id":    row.CategoryID,
		"category":       row.Category,
		"image":          images,
	}
}

// ListProducts returns a paginated joined projection of the catalog
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	params := pagination.FromContext(c)

	var rows []productRow
	defer prometheus.TrackDBOperation("query")(time.Now())
	page, err := pagination.Paginate(productQuery(), params, &rows)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	data := make([]echo.Map, 0, len(rows))
	for _, row := range rows {
		data = append(data, productJSON(row))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":         data,
		"current_page": page.CurrentPage,
		"total":        page.Total,
	})
}

// GetProduct returns one product by id with its category joined in
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var row productRow
	result := productQuery().Where("p.id = ?", id).Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Product not found", zap.String("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to load product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	return c.JSON(http.StatusOK, productJSON(row))
}

// CreateProduct validates the payload, ingests inline images, persists the
// product and returns the canonical joined projection.
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var data map[string]interface{}
	if err := c.Bind(&data); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if violations := validate.Product.Check(data); len(violations) > 0 {
		log.Warn("Product validation failed", zap.Int("violations", len(violations)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"message": validate.Messages(violations),
		})
	}

	var product model.Product

	incoming, _ := asStringSlice(data["image"])
	images, written := ingestor.Ingest(nil, incoming, 0, true)
	if err := product.SetImageList(images); err != nil {
		log.Error("Failed to encode image list", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product"})
	}

	// A missing referenced category is accepted silently; the association
	// simply stays empty.
	var category model.Category
	if result := database.GetDB().First(&category, asUint(data["category_id"])); result.Error == nil {
		product.CategoryID = &category.ID
	}

	product.Title = asString(data["title"])
	product.Description = asString(data["description"])
	product.ShortNotes = asString(data["short_notes"])
	product.Price = asFloat(data["price"])
	product.DiscountPrice = asFloat(data["discount_price"])
	product.Quantity = asInt(data["quantity"])
	product.UserID = adminUserID

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&product); result.Error != nil {
		// Roll back the file half of the pair so the upload directory does
		// not accumulate orphans.
		ingestor.Cleanup(written)
		log.Error("Failed to create product", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product"})
	}

	prometheus.ResourceOperationCounter.WithLabelValues("product", "create").Inc()
	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("title", product.Title),
		zap.Int("images", len(images)))

	var row productRow
	if result := productQuery().Where("p.id = ?", product.ID).Take(&row); result.Error != nil {
		log.Error("Failed to reload created product", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product created successfully",
		"product": productJSON(row),
	})
}

// UpdateProduct validates the payload, re-ingests the image array when one is
// supplied, persists the changes and returns the canonical joined projection.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var product model.Product
	result := database.GetDB().First(&product, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Product not found for update", zap.String("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"status":  "error",
				"message": "Product not found",
			})
		}
		log.Error("Failed to load product for update",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}

	var data map[string]interface{}
	if err := c.Bind(&data); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if violations := validate.Product.Check(data); len(violations) > 0 {
		log.Warn("Product validation failed",
			zap.String("product_id", id),
			zap.Int("violations", len(violations)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"message": validate.Messages(violations),
		})
	}

	var written []string
	if incoming, ok := asStringSlice(data["image"]); ok {
		var images []string
		images, written = ingestor.Ingest(product.ImageList(), incoming, product.ID, false)
		if err := product.SetImageList(images); err != nil {
			log.Error("Failed to encode image list", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
		}
	}

	var category model.Category
	if result := database.GetDB().First(&category, asUint(data["category_id"])); result.Error == nil {
		product.CategoryID = &category.ID
	} else {
		product.CategoryID = nil
	}

	product.Title = asString(data["title"])
	product.Description = asString(data["description"])
	product.ShortNotes = asString(data["short_notes"])
	product.Price = asFloat(data["price"])
	product.DiscountPrice = asFloat(data["discount_price"])
	product.Quantity = asInt(data["quantity"])

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&product); result.Error != nil {
		ingestor.Cleanup(written)
		log.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}

	prometheus.ResourceOperationCounter.WithLabelValues("product", "update").Inc()
	log.Info("Product updated",
		zap.Uint("product_id", product.ID),
		zap.String("title", product.Title))

	var row productRow
	if result := productQuery().Where("p.id = ?", product.ID).Take(&row); result.Error != nil {
		log.Error("Failed to reload updated product", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product updated successfully",
		"product": productJSON(row),
	})
}

// DeleteProduct removes a product. Files in the upload directory are left in
// place; order line items keep their product id.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var product model.Product
	result := database.GetDB().First(&product, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Product not found for deletion", zap.String("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"status":  "error",
				"message": "Product not found",
			})
		}
		log.Error("Failed to load product for deletion",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete product"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&product); result.Error != nil {
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete product"})
	}

	prometheus.ResourceOperationCounter.WithLabelValues("product", "delete").Inc()
	log.Info("Product deleted", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Product deleted successfully",
	})
}
