package main

import (
	"fmt"
	"log"

	"eyefi-app/config"
	"eyefi-app/controllers/idgen"
	"eyefi-app/database"
	"eyefi-app/migration"
	"eyefi-app/routes"
	seed "eyefi-app/seeder"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	database.EnsureDatabaseExists(config.DBApp)

	appDB, err := database.OpenAppDB()
	if err != nil {
		log.Fatalf("Failed to connect to app database: %v", err)
	}

	if err := migration.Migrate(appDB); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	erpDB, err := database.OpenErpDB()
	if err != nil {
		log.Fatalf("Failed to connect to ERP mirror: %v", err)
	}

	idgen.Init()
	seed.SeedUsers(appDB)

	// Dev convenience: when the mirror is empty, build and seed it so the
	// dashboard has data. The replication job owns this schema in prod.
	if !erpDB.Migrator().HasTable("wo_mstr") {
		if err := migration.MigrateErpMirror(erpDB); err != nil {
			log.Fatalf("Failed to migrate ERP mirror: %v", err)
		}
		seed.SeedDemoErpData(erpDB)
	}

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, appDB)
	routes.SetupUserRoutes(app, appDB)
	routes.SetupAllocationRoutes(app, erpDB, appDB)
	routes.SetupDashboardRoutes(app, erpDB, appDB)

	port := config.APP_PORT
	fmt.Println("Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
