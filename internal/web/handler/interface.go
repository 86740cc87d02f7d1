package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoPowerDNS-Admin/appsettings/internal/appsettings"
	"github.com/GoPowerDNS-Admin/appsettings/internal/config"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, reconciler *appsettings.Reconciler) error
}
