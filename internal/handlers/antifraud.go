package handlers

import (
	apperrors "antifraud/internal/errors"
	"antifraud/internal/models"
	"antifraud/internal/services/antifraud"
	"antifraud/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AntifraudHandler struct {
	antifraudService antifraud.Service
}

func NewAntifraudHandler(antifraudSvc antifraud.Service) *AntifraudHandler {
	return &AntifraudHandler{antifraudService: antifraudSvc}
}

// EvaluateTransaction classifies the amount in the body into a risk tier.
func (h *AntifraudHandler) EvaluateTransaction(c *fiber.Ctx) error {
	var input models.TransactionRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.RespondError(c, apperrors.ErrInvalidBody)
	}

	verdict, err := h.antifraudService.Evaluate(c.UserContext(), &input)
	if err != nil {
		return utils.RespondError(c, err)
	}

	return utils.Success(c, models.TransactionResponse{Result: verdict})
}
