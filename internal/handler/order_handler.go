package handler

import (
	"errors"
	"net/http"
	"time"

	"backoffice-service/internal/model"
	"backoffice-service/internal/pagination"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// orderRow is the joined line-item projection: one OrderProduct with its
// order, product and user fields flattened in.
type orderRow struct {
	ID            uint
	OrderID       uint
	ProductID     uint
	UserID        uint
	Image         string
	Title         string
	Quantity      int
	Price         float64
	Name          string
	Email         string
	Phone         string
	Address       string
	City          string
	TransactionID string
	PaidAmount    float64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func orderQuery() *gorm.DB {
	return database.GetDB().
		Table("order_products AS op").
		Select("op.id, o.id AS order_id, p.id AS product_id, op.user_id, p.image, p.title, op.quantity, op.price, o.name, o.email, o.phone, o.address, o.city, o.transaction_id, o.paid_amount, op.status, op.created_at, op.updated_at").
		Joins("LEFT JOIN orders o ON o.id = op.order_id").
		Joins("LEFT JOIN products p ON p.id = op.product_id")
}

func orderJSON(row orderRow, thumbnail bool) echo.Map {
	// image is decoded once here. List rows carry only the first filename
	// as a thumbnail; the detail view carries the full ordered list.
	var image interface{}
	images := model.DecodeImageColumn(row.Image)
	if thumbnail {
		if len(images) > 0 {
			image = images[0]
		}
	} else {
		image = images
	}

	return echo.Map{
		"id":             row.ID,
		"order_id":       row.OrderID,
		"product_id":     row.ProductID,
		"user_id":        row.UserID,
		"image":          image,
		"title":          row.Title,
		"quantity":       row.Quantity,
		"price":          row.Price,
		"name":           row.Name,
		"email":          row.Email,
		"phone":          row.Phone,
		"address":        row.Address,
		"city":           row.City,
		"transaction_id": row.TransactionID,
		"paid_amount":    row.PaidAmount,
		"status":         row.Status,
		"created_at":     row.CreatedAt,
		"updated_at":     row.UpdatedAt,
	}
}

// ListOrders returns a paginated projection of order line items
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	params := pagination.FromContext(c)

	var rows []orderRow
	defer prometheus.TrackDBOperation("query")(time.Now())
	page, err := pagination.Paginate(orderQuery(), params, &rows)
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve orders"})
	}

	data := make([]echo.Map, 0, len(rows))
	for _, row := range rows {
		data = append(data, orderJSON(row, true))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":         data,
		"current_page": page.CurrentPage,
		"total":        page.Total,
	})
}

// GetOrder returns one order line item by id
func GetOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var row orderRow
	result := orderQuery().Where("op.id = ?", id).Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Order not found", zap.String("order_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		log.Error("Failed to load order", zap.String("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve order"})
	}

	return c.JSON(http.StatusOK, orderJSON(row, false))
}

// UpdateOrder changes a line item's fulfillment status. Every other order
// field is immutable after checkout.
func UpdateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var item model.OrderProduct
	result := database.GetDB().First(&item, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Order not found for update", zap.String("order_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		log.Error("Failed to load order for update",
			zap.String("order_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("order_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Status != "" {
		item.Status = req.Status
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&item); result.Error != nil {
		log.Error("Failed to update order",
			zap.String("order_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
	}

	prometheus.ResourceOperationCounter.WithLabelValues("order", "update").Inc()
	log.Info("Order status updated",
		zap.Uint("order_id", item.ID),
		zap.String("status", item.Status))

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Order updated successfully",
	})
}
