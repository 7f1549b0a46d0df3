package handler

import (
	"encoding/json"
	"log"
	"time"

	"nyn_restaurant/config"
	"nyn_restaurant/database"
	"nyn_restaurant/helper"
	"nyn_restaurant/model"
	"nyn_restaurant/utils"

	"github.com/gofiber/fiber/v2"
)

// StripeWebhook turns a payment-success event into a persisted order. The
// endpoint is public, so the signature check is the authentication boundary;
// everything after it must tolerate redelivery, which MaterializeOrder handles
// by keying creation on the payment reference.
func StripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	stripe := NewStripe()

	if err := stripe.VerifyWebhookSignature(payload, c.Get("Stripe-Signature"), time.Now()); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid signature", err)
	}

	var event model.StripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Malformed event payload", err)
	}

	switch event.Type {
	case "payment_intent.succeeded", "checkout.session.completed":
		// both flows carry the same order snapshot in metadata
	default:
		return c.JSON(fiber.Map{"received": true})
	}

	var object model.StripeEventObject
	if err := json.Unmarshal(event.Data.Object, &object); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Malformed event object", err)
	}
	if object.ID == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Event object has no id", nil)
	}

	meta, err := helper.ParseOrderMetadata(object.Metadata)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Malformed order metadata", err)
	}

	order, created, err := helper.MaterializeOrder(database.DB, object.ID, meta, time.Now())
	if err != nil {
		// non-200 makes the gateway redeliver; the next attempt finds the
		// existing row if this one half-landed
		log.Printf("failed to materialize order for %s: %v", object.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record order", nil)
	}

	if created {
		log.Printf("order %s materialized from %s (%s)", order.OrderNumber, object.ID, event.Type)
		sendOrderConfirmation(order)
		PublishKitchenEvent("order_created", order)
	} else {
		log.Printf("duplicate delivery for %s, order %s already exists", object.ID, order.OrderNumber)
	}

	return c.JSON(fiber.Map{"received": true})
}

func sendOrderConfirmation(order *model.Order) {
	items := make([]utils.OrderConfirmationItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, utils.OrderConfirmationItem{
			Name:  item.Name,
			Qty:   item.Qty,
			Price: item.Price,
		})
	}
	utils.SendOrderConfirmationEmail(order.Email, utils.OrderConfirmationData{
		OrderNumber:  order.OrderNumber,
		CustomerName: order.FirstName + " " + order.LastName,
		Items:        items,
		Subtotal:     order.Subtotal,
		Discount:     order.Discount,
		Tax:          order.Tax,
		PackagingFee: order.PackagingFee,
		Tip:          order.Tip,
		Total:        order.Total,
		PickupTime:   order.PickupTime,
		DetailLink:   config.Config("APP_URL") + "/order-confirmation?ref=" + order.PaymentReference,
	})
}
