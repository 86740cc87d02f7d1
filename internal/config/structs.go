package config

import (
	"github.com/GoPowerDNS-Admin/appsettings/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    `validate:"gte=0,lte=65535"` // listening port for the webserver
	ShutDownTime   int    `validate:"gte=0"`           // wait time for shutdown
	CheckAliveURI  string // path answering load balancer health checks
}
