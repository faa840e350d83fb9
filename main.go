package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/gsc-community/events-api/cmd/app"
)

// @termsOfService  http://swagger.io/terms/
// @contact.name   GSC Web Team
// @contact.url    https://globalsecurity.community
//
// @license.name  MIT
//
// @securityDefinitions.apikey ClientPrincipal
// @in header
// @name X-MS-Client-Principal
// @description Base64-encoded client principal injected by the perimeter
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
