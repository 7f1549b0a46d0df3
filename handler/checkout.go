package handler

import (
	"errors"
	"log"

	"nyn_restaurant/constants"
	"nyn_restaurant/database"
	"nyn_restaurant/helper"
	"nyn_restaurant/model"
	"nyn_restaurant/utils"

	"github.com/gofiber/fiber/v2"
)

// CreatePaymentIntent asks the gateway to prepare a charge for a verified
// checkout request and returns the client secret. The order itself is not
// written here: a prepared charge can still be abandoned or fail, so the
// order only exists once the webhook confirms payment.
func CreatePaymentIntent(c *fiber.Ctx) error {
	input, ok := c.Locals("checkoutInput").(model.CheckoutInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing checkout input"))
	}

	stripe := NewStripe()
	if stripe.Config.SecretKey == "" {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Payment processing is not configured", nil)
	}

	reason, err := helper.VerifyCheckoutTotals(database.DB, &input)
	if err != nil {
		log.Printf("checkout verification failed: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}
	if reason != "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, reason, nil)
	}

	meta := helper.BuildOrderMetadata(&input)
	intent, err := stripe.CreatePaymentIntent(model.PaymentIntentRequest{
		AmountCents:  helper.ToCents(input.Total),
		ReceiptEmail: input.Email,
		Metadata:     helper.EncodeOrderMetadata(meta),
	})
	if err != nil {
		log.Printf("payment intent creation failed: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not start payment, please try again", nil)
	}

	recordCheckoutSession(intent.ID, "payment_intent", helper.ToCents(input.Total), input.Email)

	return c.JSON(fiber.Map{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}

// CreateCheckoutSession is the hosted-page variant of the same flow.
func CreateCheckoutSession(c *fiber.Ctx) error {
	input, ok := c.Locals("checkoutInput").(model.CheckoutInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing checkout input"))
	}

	stripe := NewStripe()
	if stripe.Config.SecretKey == "" {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Payment processing is not configured", nil)
	}

	reason, err := helper.VerifyCheckoutTotals(database.DB, &input)
	if err != nil {
		log.Printf("checkout verification failed: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}
	if reason != "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, reason, nil)
	}

	meta := helper.BuildOrderMetadata(&input)
	session, err := stripe.CreateCheckoutSession(model.CheckoutSessionRequest{
		AmountCents:   helper.ToCents(input.Total),
		CustomerEmail: input.Email,
		ProductName:   "NYN Online Order",
		Metadata:      helper.EncodeOrderMetadata(meta),
	})
	if err != nil {
		log.Printf("checkout session creation failed: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not start checkout, please try again", nil)
	}

	recordCheckoutSession(session.ID, "checkout_session", helper.ToCents(input.Total), input.Email)

	return c.JSON(fiber.Map{
		"sessionId": session.ID,
		"url":       session.URL,
	})
}

// recordCheckoutSession keeps a ledger row per charge handed to the gateway.
// The confirmation lookup uses it to tell "webhook not yet delivered" apart
// from "no such payment". Failure here never blocks checkout.
func recordCheckoutSession(paymentRef, kind string, amountCents int64, email string) {
	session := model.CheckoutSession{
		PaymentReference: paymentRef,
		Kind:             kind,
		AmountCents:      amountCents,
		Email:            email,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		log.Printf("failed to record checkout session %s: %v", paymentRef, err)
	}
}
