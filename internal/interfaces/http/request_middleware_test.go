package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/daily-inventory/internal/interfaces/http"
	"github.com/jhoicas/daily-inventory/pkg/logger"
)

func TestRequestLogger_NivelSegunEstado(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/falla", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusBadRequest) })

	cases := map[string]string{"/ok": "info", "/falla": "warn"}
	for path, level := range cases {
		buf.Reset()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		require.NotNil(t, resp)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, level, entry["level"])
		assert.Equal(t, path, entry["path"])
		assert.Equal(t, "GET", entry["method"])
	}
}
