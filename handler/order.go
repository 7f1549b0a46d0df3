package handler

import (
	"errors"
	"log"
	"time"

	"nyn_restaurant/database"
	"nyn_restaurant/model"
	"nyn_restaurant/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// processingWindow is how long after checkout we still answer "processing"
// instead of a hard not-found while the webhook has not landed.
const processingWindow = 15 * time.Minute

// GetOrderConfirmation looks up the materialized order for a payment
// reference. Materialization is asynchronous, so the first lookup after
// checkout may legitimately find nothing; the 404 body says whether a matching
// charge is still in flight so the storefront can retry before giving up.
func GetOrderConfirmation(c *fiber.Ctx) error {
	ref := c.Query("ref")
	if ref == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing payment reference", nil)
	}

	var order model.Order
	err := database.DB.Preload("Items").Where("payment_reference = ?", ref).First(&order).Error
	if err == nil {
		return utils.SuccessResponse(c, fiber.StatusOK, orderResponse(&order))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load order", err)
	}

	processing := false
	var session model.CheckoutSession
	if err := database.DB.Where("payment_reference = ? AND created_at > ?", ref, time.Now().Add(-processingWindow)).
		First(&session).Error; err == nil {
		processing = true
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message":    "Order not found, payment may still be processing",
		"processing": processing,
	})
}

// GetOrderByNumber returns the customer-facing order detail for a pickup code.
// Order numbers are display labels, so on the off chance of a collision the
// most recent order wins.
func GetOrderByNumber(c *fiber.Ctx) error {
	orderNumber := c.Params("orderNumber")

	var order model.Order
	if err := database.DB.Preload("Items").
		Where("order_number = ?", orderNumber).
		Order("created_at desc").
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orderResponse(&order))
}

func orderResponse(order *model.Order) map[string]interface{} {
	qrCode, err := utils.QRCodeDataURL(order.OrderNumber, 400)
	if err != nil {
		log.Printf("failed to build QR for order %s: %v", order.OrderNumber, err)
	}

	items := []map[string]interface{}{}
	for _, item := range order.Items {
		items = append(items, map[string]interface{}{
			"name":        item.Name,
			"price":       item.Price,
			"qty":         item.Qty,
			"categoryKey": item.CategoryKey,
			"image":       item.Image,
		})
	}

	return map[string]interface{}{
		"orderNumber":   order.OrderNumber,
		"status":        order.Status,
		"paymentStatus": order.PaymentStatus,
		"customerName":  order.FirstName + " " + order.LastName,
		"email":         order.Email,
		"phone":         order.Phone,
		"items":         items,
		"subtotal":      order.Subtotal,
		"discount":      order.Discount,
		"tax":           order.Tax,
		"packagingFee":  order.PackagingFee,
		"tip":           order.Tip,
		"total":         order.Total,
		"pickupTime":    order.PickupTime,
		"instructions":  order.Instructions,
		"placedAt":      order.CreatedAt.Format("01/02/2006 15:04"),
		"qrCode":        qrCode,
	}
}
