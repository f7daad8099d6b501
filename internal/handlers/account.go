package handlers

import (
	apperrors "antifraud/internal/errors"
	"antifraud/internal/logging"
	"antifraud/internal/middleware"
	"antifraud/internal/models"
	"antifraud/internal/services/account"
	"antifraud/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accountService account.Service
	logger         *logging.Logger
}

func NewAccountHandler(accountSvc account.Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountSvc,
		logger:         logging.Global().Named("handlers"),
	}
}

func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var input models.CreateAccountInput
	if err := c.BodyParser(&input); err != nil {
		return utils.RespondError(c, apperrors.ErrInvalidBody)
	}

	resp, err := h.accountService.Register(c.UserContext(), &input)
	if err != nil {
		return h.fail(c, "register", err)
	}

	return utils.Created(c, resp)
}

func (h *AccountHandler) List(c *fiber.Ctx) error {
	accounts, err := h.accountService.List(c.UserContext())
	if err != nil {
		return h.fail(c, "list", err)
	}

	return utils.Success(c, accounts)
}

func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	username := c.Params("username")

	resp, err := h.accountService.Remove(c.UserContext(), username)
	if err != nil {
		return h.fail(c, "delete", err)
	}

	h.logger.Info("account deleted",
		zap.String("username", resp.Username),
		zap.String("by", middleware.UsernameFromContext(c)),
	)
	return utils.Success(c, resp)
}

func (h *AccountHandler) fail(c *fiber.Ctx, op string, err error) error {
	if apperrors.KindOf(err) == apperrors.KindInternal {
		h.logger.Error("account operation failed", zap.String("op", op), zap.Error(err))
	}
	return utils.RespondError(c, err)
}
