package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/config"
	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/internal/repository/postgres"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// Seeds a small demo catalog for local development.
func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	ethnic := &domain.Category{Name: "Ethnic Wear"}
	accessories := &domain.Category{Name: "Accessories"}
	for _, c := range []*domain.Category{ethnic, accessories} {
		if err := repos.Category.Create(ctx, c); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create category %s: %v\n", c.Name, err)
			os.Exit(1)
		}
		fmt.Printf("Created category %s (%s)\n", c.Name, c.ID)
	}

	products := []*domain.Product{
		{
			Name:            "Embroidered Kurta",
			Description:     strPtr("Hand-embroidered cotton kurta"),
			Price:           750,
			OriginalPrice:   floatPtr(1000),
			CategoryID:      &ethnic.ID,
			StockQuantity:   25,
			IsActive:        true,
			IsTrending:      true,
			ImageURLs:       []string{"https://img.example/kurta-1.jpg"},
			AvailableSizes:  []string{"S", "M", "L", "XL"},
			AvailableColors: []string{"Red", "Blue", "Green"},
		},
		{
			Name:            "Silk Dupatta",
			Description:     strPtr("Pure silk dupatta with zari border"),
			Price:           250,
			CategoryID:      &accessories.ID,
			StockQuantity:   40,
			IsActive:        true,
			ImageURLs:       []string{"https://img.example/dupatta-1.jpg"},
			AvailableColors: []string{"Gold", "Maroon"},
		},
		{
			Name:           "Anarkali Suit",
			Price:          1800,
			CategoryID:     &ethnic.ID,
			StockQuantity:  10,
			IsActive:       true,
			IsTrending:     true,
			ImageURLs:      []string{"https://img.example/anarkali-1.jpg"},
			AvailableSizes: []string{"M", "L"},
		},
	}

	for _, p := range products {
		if err := repos.Product.Create(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create product %s: %v\n", p.Name, err)
			os.Exit(1)
		}
		fmt.Printf("Created product %s (%s)\n", p.Name, p.ID)
	}

	fmt.Println("Seed completed.")
}
