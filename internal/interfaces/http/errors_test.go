package http

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/domain"
)

func TestErrorResponse_Taxonomia(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.NewValidationError("rating", "fuera de rango"), fiber.StatusBadRequest, "VALIDATION"},
		{fmt.Errorf("get: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{fmt.Errorf("insert: %w", domain.ErrReferentialIntegrity), fiber.StatusConflict, "REFERENTIAL_INTEGRITY"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrInactiveAccount, fiber.StatusForbidden, "INACTIVE_ACCOUNT"},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("ping: %w", domain.ErrStoreUnavailable), fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{fmt.Errorf("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, body := errorResponse(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, body.Code, tc.err.Error())
	}
}

func TestValidateStruct_PrimerCampo(t *testing.T) {
	err := validateStruct(&dto.CreateFeedbackRequest{ProductID: "PRD-1", Rating: 9, ShortComment: "ok"})

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "rating", verr.Field)
	assert.Equal(t, "debe ser como máximo 5", verr.Message)
}
