//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/linklift/linklift/internal/cache"
	"github.com/linklift/linklift/internal/config"
	"github.com/linklift/linklift/internal/database"
	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/repository"
)

var (
	firstNames = []string{"Rahul", "Priya", "Amit", "Sneha", "Vikram", "Anita", "Raj", "Neha", "Suresh", "Kavita",
		"Arun", "Deepa", "Kiran", "Meera", "Sanjay", "Ritu", "Vijay", "Pooja", "Manoj", "Swati"}
	lastNames = []string{"Kumar", "Sharma", "Patel", "Singh", "Reddy", "Rao", "Gupta", "Joshi", "Nair", "Menon"}
	colleges  = []string{"COEP Pune", "VJTI Mumbai", "IIT Bombay", "SPIT Mumbai", "PICT Pune", "MIT Pune"}
	carModels = []string{"Maruti Swift", "Hyundai i20", "Tata Nexon", "Honda City", "Kia Seltos", "Toyota Innova"}
)

// corridors are realistic routes between catalog cities, waypoints in travel order.
var corridors = []struct {
	pickup, drop string
	waypoints    []string
}{
	{"Mumbai", "Pune", []string{"Panvel", "Khopoli", "Lonavala"}},
	{"Pune", "Mumbai", []string{"Lonavala", "Khopoli", "Panvel"}},
	{"Mumbai", "Nashik", []string{"Thane", "Igatpuri"}},
	{"Pune", "Nashik", []string{"Ahmednagar"}},
	{"Pune", "Mahabaleshwar", []string{"Satara"}},
	{"Mumbai", "Alibaug", []string{"Panvel"}},
	{"Nashik", "Shirdi", nil},
	{"Pune", "Kolhapur", []string{"Satara", "Sangli"}},
}

func main() {
	rand.Seed(time.Now().UnixNano())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.DatabaseURL, cfg.DBMaxConnections, cfg.DBMaxIdleConnections)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	redis, err := database.NewRedis(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db.DB)
	rideRepo := repository.NewRideRepository(db.DB)

	// Seed the city catalog (List seeds the Redis set on first call)
	cityCatalog := cache.NewCityCatalog(redis.Client)
	cities, err := cityCatalog.List(ctx)
	if err != nil {
		log.Fatalf("Failed to seed city catalog: %v", err)
	}
	log.Printf("City catalog ready (%d cities)", len(cities))

	// Create users
	log.Println("Creating 30 users...")
	userIDs := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		name := fmt.Sprintf("%s %s",
			firstNames[rand.Intn(len(firstNames))],
			lastNames[rand.Intn(len(lastNames))])
		phone := fmt.Sprintf("+919%09d", rand.Intn(1000000000))
		user := &models.User{
			Name:    name,
			Email:   fmt.Sprintf("user%d@linklift.in", i),
			Phone:   &phone,
			Year:    fmt.Sprintf("%d", 2022+rand.Intn(5)),
			College: colleges[rand.Intn(len(colleges))],
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		userIDs = append(userIDs, user.ID)
	}
	log.Printf("Created %d users", len(userIDs))

	// Create upcoming rides spread over the next week
	log.Println("Creating 40 rides...")
	created := 0
	for i := 0; i < 40; i++ {
		c := corridors[rand.Intn(len(corridors))]
		departAt := time.Now().Add(time.Duration(1+rand.Intn(7*24)) * time.Hour)
		ride := &models.Ride{
			PublisherID:   userIDs[rand.Intn(len(userIDs))],
			PickupCity:    c.pickup,
			PickupAddress: fmt.Sprintf("%s central stand", c.pickup),
			DropCity:      c.drop,
			DropAddress:   fmt.Sprintf("%s main gate", c.drop),
			OnRouteCities: c.waypoints,
			DepartDate:    departAt.Format("2006-01-02"),
			DepartTime:    departAt.Format("15:04"),
			Capacity:      1 + rand.Intn(4),
			CostPerPerson: float64(100 + rand.Intn(500)),
			WomenOnly:     rand.Intn(10) == 0,
			CarModel:      carModels[rand.Intn(len(carModels))],
			LicensePlate:  fmt.Sprintf("MH%02d%c%c%04d", 1+rand.Intn(49), 'A'+rune(rand.Intn(26)), 'A'+rune(rand.Intn(26)), rand.Intn(10000)),
		}
		if err := rideRepo.Create(ctx, ride); err != nil {
			log.Printf("Failed to create ride: %v", err)
			continue
		}
		created++
	}
	log.Printf("Created %d rides", created)

	log.Println("Seed complete")
}
