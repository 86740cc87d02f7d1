package main

import (
	"os"

	"github.com/GoPowerDNS-Admin/appsettings/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
