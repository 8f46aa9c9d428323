// Command seed runs the database seeder for the training tracker.
package main

import (
	"flag"
	"log"

	"przone/internal/config"
	"przone/internal/database"
	"przone/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numWorkouts := flag.Int("workouts", 200, "Number of workouts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d workouts, clean=%v\n", *numUsers, *numWorkouts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(database.DB, seed.Options{
		NumUsers:    *numUsers,
		NumWorkouts: *numWorkouts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
