// Package settings declares the settings entity types shipped with the service.
package settings

import (
	"github.com/GoPowerDNS-Admin/appsettings/internal/appsettings"
)

// Entity type names.
const (
	General = "general"
	Mail    = "mail"
)

// GeneralType holds site wide behaviour.
func GeneralType() appsettings.EntityType {
	return appsettings.NewEntityType(General,
		appsettings.String("siteTitle", "appsettings"),
		appsettings.Bool("maintenanceMode", false),
		appsettings.Int("sessionTimeoutMinutes", 30),
		appsettings.Long("maxUploadBytes", 10<<20),
		appsettings.Double("requestsPerSecond", 5),
	)
}

// MailType holds outgoing mail delivery.
func MailType() appsettings.EntityType {
	return appsettings.NewEntityType(Mail,
		appsettings.String("smtpHost", "localhost"),
		appsettings.Int("smtpPort", 25),
		appsettings.Bool("useTLS", true),
		appsettings.String("senderAddress", "noreply@localhost"),
		appsettings.Float("retryBackoffFactor", 1.5),
		appsettings.NoDefault("smtpUser", appsettings.KindString),
	)
}

// NewCatalog returns a catalog with every built-in entity type registered.
func NewCatalog() (*appsettings.Catalog, error) {
	return appsettings.NewCatalog(GeneralType(), MailType())
}
