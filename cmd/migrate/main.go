package main

import (
	"flag"
	"log"

	"github.com/pageza/harvestplan/backend/config"
	"github.com/pageza/harvestplan/backend/internal/database"
)

func main() {
	drop := flag.Bool("drop", false, "Drop all tables before migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if *drop {
		log.Println("Dropping tables...")
		if err := database.DropAll(db); err != nil {
			log.Fatalf("failed to drop tables: %v", err)
		}
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")
}
