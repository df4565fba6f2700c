package main

import (
	"flag"
	"log"

	"github.com/nameswipe/nameswipe/internal/config"
	"github.com/nameswipe/nameswipe/internal/db"
)

func main() {
	demo := flag.Bool("demo", false, "also load deterministic demo users/sessions/swipes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	seeded, err := db.SeedBabyNames(database)
	if err != nil {
		log.Fatalf("failed to seed name catalog: %v", err)
	}
	if seeded == 0 {
		log.Println("name catalog already seeded, skipping")
	} else {
		log.Printf("seeded %d names", seeded)
	}

	if *demo {
		if err := db.SeedDemoData(database); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		log.Println("demo data loaded")
	}

	log.Println("seeding completed")
}
