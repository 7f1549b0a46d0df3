package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nyn_restaurant/constants"
	"nyn_restaurant/database"
	"nyn_restaurant/helper"
	"nyn_restaurant/model"
	"nyn_restaurant/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupHandlerDB points the package-global connection at a throwaway postgres.
func setupHandlerDB(t *testing.T) {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:16-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%d user=testuser password=testpass dbname=testdb sslmode=disable",
		host, port.Int())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.Migrate(db)

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func seedOrder(t *testing.T, ref, status string) *model.Order {
	t.Helper()
	order := &model.Order{
		OrderNumber:      helper.GenerateOrderNumber(time.Now()),
		PaymentReference: ref,
		PaymentStatus:    constants.PAYMENT_PAID,
		Status:           status,
		FirstName:        "Lena",
		LastName:         "M",
		Email:            "lena@example.com",
		Phone:            "+1 212 555 0101",
		Subtotal:         52.00,
		Tax:              4.62,
		PackagingFee:     constants.PACKAGING_FEE,
		Total:            58.12,
		Items: []model.OrderItem{
			{Name: "Borscht", Price: 14.00, Qty: 1, CategoryKey: "soups"},
			{Name: "Ribeye Steak", Price: 38.00, Qty: 1, CategoryKey: "mains"},
		},
	}
	require.NoError(t, database.DB.Create(order).Error)
	return order
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestGetOrderConfirmation_Found(t *testing.T) {
	setupHandlerDB(t)
	seedOrder(t, "pi_conf_1", constants.ORDER_PENDING)

	app := fiber.New()
	app.Get("/confirmation", GetOrderConfirmation)

	resp, err := app.Test(httptest.NewRequest("GET", "/confirmation?ref=pi_conf_1", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, constants.ORDER_PENDING, data["status"])
	assert.Equal(t, "Lena M", data["customerName"])
	assert.Len(t, data["items"], 2)
	assert.NotEmpty(t, data["qrCode"])
}

func TestGetOrderConfirmation_ProcessingWindow(t *testing.T) {
	setupHandlerDB(t)

	app := fiber.New()
	app.Get("/confirmation", GetOrderConfirmation)

	// no order, no checkout session: a hard miss
	resp, err := app.Test(httptest.NewRequest("GET", "/confirmation?ref=pi_unknown", nil), -1)
	require.NoError(t, err)
	body := decodeBody(t, resp.Body)
	resp.Body.Close()
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["processing"])

	// a fresh checkout session means the webhook just has not landed yet
	require.NoError(t, database.DB.Create(&model.CheckoutSession{
		PaymentReference: "pi_inflight",
		Kind:             "payment_intent",
		AmountCents:      5812,
		Email:            "lena@example.com",
	}).Error)

	resp, err = app.Test(httptest.NewRequest("GET", "/confirmation?ref=pi_inflight", nil), -1)
	require.NoError(t, err)
	body = decodeBody(t, resp.Body)
	resp.Body.Close()
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, true, body["processing"])

	// once the order materializes the same lookup succeeds
	seedOrder(t, "pi_inflight", constants.ORDER_PENDING)
	resp, err = app.Test(httptest.NewRequest("GET", "/confirmation?ref=pi_inflight", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetOrderConfirmation_MissingRef(t *testing.T) {
	setupHandlerDB(t)

	app := fiber.New()
	app.Get("/confirmation", GetOrderConfirmation)

	resp, err := app.Test(httptest.NewRequest("GET", "/confirmation", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func statusApp() *fiber.App {
	app := fiber.New()
	app.Patch("/orders/:orderId/status", validate.UpdateOrderStatus(), UpdateOrderStatus)
	return app
}

func patchStatus(t *testing.T, app *fiber.App, orderID uint, status string) int {
	t.Helper()
	body := strings.NewReader(fmt.Sprintf(`{"status":%q}`, status))
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/orders/%d/status", orderID), body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestUpdateOrderStatus_WalksTheLifecycle(t *testing.T) {
	setupHandlerDB(t)
	order := seedOrder(t, "pi_life_1", constants.ORDER_PENDING)
	app := statusApp()

	for _, status := range []string{
		constants.ORDER_CONFIRMED,
		constants.ORDER_PREPARING,
		constants.ORDER_READY,
		constants.ORDER_PICKED_UP,
	} {
		assert.Equal(t, fiber.StatusOK, patchStatus(t, app, order.ID, status))
	}

	var got model.Order
	require.NoError(t, database.DB.First(&got, order.ID).Error)
	assert.Equal(t, constants.ORDER_PICKED_UP, got.Status)
}

func TestUpdateOrderStatus_RejectsIllegalMoves(t *testing.T) {
	setupHandlerDB(t)
	order := seedOrder(t, "pi_life_2", constants.ORDER_PENDING)
	app := statusApp()

	// skipping a step
	assert.Equal(t, fiber.StatusBadRequest, patchStatus(t, app, order.ID, constants.ORDER_READY))
	// going backwards
	assert.Equal(t, fiber.StatusBadRequest, patchStatus(t, app, order.ID, constants.ORDER_PENDING))
	// unknown value is caught before the handler
	assert.Equal(t, fiber.StatusBadRequest, patchStatus(t, app, order.ID, "vaporized"))

	var got model.Order
	require.NoError(t, database.DB.First(&got, order.ID).Error)
	assert.Equal(t, constants.ORDER_PENDING, got.Status)
}

func TestUpdateOrderStatus_Cancel(t *testing.T) {
	setupHandlerDB(t)
	order := seedOrder(t, "pi_life_3", constants.ORDER_READY)
	app := statusApp()

	assert.Equal(t, fiber.StatusOK, patchStatus(t, app, order.ID, constants.ORDER_CANCELLED))

	var got model.Order
	require.NoError(t, database.DB.First(&got, order.ID).Error)
	assert.Equal(t, constants.ORDER_CANCELLED, got.Status)
	assert.NotNil(t, got.CancelledAt)

	// terminal orders cannot be cancelled again or revived
	assert.Equal(t, fiber.StatusBadRequest, patchStatus(t, app, order.ID, constants.ORDER_CANCELLED))
	assert.Equal(t, fiber.StatusBadRequest, patchStatus(t, app, order.ID, constants.ORDER_PENDING))
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	setupHandlerDB(t)
	app := statusApp()

	assert.Equal(t, fiber.StatusNotFound, patchStatus(t, app, 99999, constants.ORDER_CONFIRMED))
}
