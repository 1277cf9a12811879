package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"questchain/services"
	"questchain/utils"
	"questchain/wallet"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrQuestNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, wallet.ErrProviderNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrQuestAlreadyCompleted),
		errors.Is(err, services.ErrDuplicateID):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidQuest),
		errors.Is(err, services.ErrInvalidProject),
		errors.Is(err, services.ErrEmptyAddress),
		errors.Is(err, utils.ErrUnsupportedAsset):
		return fiber.StatusBadRequest
	case errors.Is(err, wallet.ErrProviderUnavailable),
		errors.Is(err, wallet.ErrNoAddressesReturned),
		errors.Is(err, wallet.ErrChainRegistrationRejected):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// fail writes the {"error", "cause"} body used across the API.
func fail(c *fiber.Ctx, err error, msg string) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg(msg)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
		"cause": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string, err error) error {
	body := fiber.Map{"error": msg}
	if err != nil {
		body["cause"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
