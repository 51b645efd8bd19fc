package serverutils

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-chat-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email   string `validate:"required,email"`
	Content string `validate:"required"`
}

func TestValidateRequestWrapsInvalidInput(t *testing.T) {
	err := ValidateRequest(sampleRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dto.ErrInvalidInput))
	assert.Contains(t, err.Error(), "Email")
	assert.Contains(t, err.Error(), "Content")

	assert.NoError(t, ValidateRequest(sampleRequest{Email: "user@example.com", Content: "hi"}))
}

func TestValidationFailureReturnsBadRequest(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Post("/echo", func(ctx *fiber.Ctx) error {
		var req sampleRequest
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
		if err := ValidateRequest(req); err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", nil))
	})

	req := httptest.NewRequest("POST", "/echo", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
