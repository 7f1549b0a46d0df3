package validate

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consultationApp() *fiber.App {
	app := fiber.New()
	app.Post("/consultation", CreateConsultation(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postConsultation(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/consultation", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestCreateConsultation_AcceptsKnownEventTypes(t *testing.T) {
	app := consultationApp()

	for _, eventType := range []string{"wedding", "corporate", "birthday", "other"} {
		body := `{"name":"Olga","email":"olga@example.com","phone":"+1 212 555 0101","eventType":"` + eventType + `"}`
		assert.Equal(t, fiber.StatusOK, postConsultation(t, app, body), eventType)
	}
}

func TestCreateConsultation_RejectsUnknownEventType(t *testing.T) {
	app := consultationApp()

	body := `{"name":"Olga","email":"olga@example.com","phone":"+1 212 555 0101","eventType":"rave"}`
	assert.Equal(t, fiber.StatusBadRequest, postConsultation(t, app, body))
}

func TestCreateConsultation_RejectsBadContact(t *testing.T) {
	app := consultationApp()

	assert.Equal(t, fiber.StatusBadRequest, postConsultation(t, app,
		`{"name":"Olga","email":"not-an-email","phone":"+1 212 555 0101","eventType":"wedding"}`))
	assert.Equal(t, fiber.StatusBadRequest, postConsultation(t, app,
		`{"name":"Olga","email":"olga@example.com","phone":"nope","eventType":"wedding"}`))
}
