package main

import (
	"context"
	"log"
	"os"

	"github.com/zatekoja/car-rental-platform/internal/adapters/database"
	"github.com/zatekoja/car-rental-platform/internal/application/services"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/car-rental-platform/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				event_failures,
				notifications,
				payments,
				reservations,
				cars,
				users
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	userService := services.NewUserService(database.NewUserAdapter(pgClient))
	carService := services.NewCarService(database.NewCarAdapter(pgClient), database.NewReservationAdapter(pgClient))

	seedUsers := []struct {
		name  string
		email string
	}{
		{"Alice Johnson", "alice@example.com"},
		{"Bob Smith", "bob@example.com"},
		{"Carol Danvers", "carol@example.com"},
	}
	for _, u := range seedUsers {
		user, err := userService.CreateUser(ctx, u.name, u.email)
		if err != nil {
			log.Fatalf("Failed to seed user %q: %v", u.name, err)
		}
		log.Printf("Seeded user %s (%s)", user.Name, user.ID)
	}

	seedCars := []struct {
		model       string
		pricePerDay float64
	}{
		{"Toyota Corolla", 45},
		{"Honda Civic", 50},
		{"Tesla Model 3", 95},
		{"Ford Transit", 80},
	}
	for _, c := range seedCars {
		car, err := carService.CreateCar(ctx, c.model, c.pricePerDay)
		if err != nil {
			log.Fatalf("Failed to seed car %q: %v", c.model, err)
		}
		log.Printf("Seeded car %s (%s)", car.Model, car.ID)
	}

	log.Println("Seeding complete")
}
