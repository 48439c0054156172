package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/config"
	"github.com/nirajd1102/shopping-website/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	fmt.Println("🛍️ Listing all products:")

	products, err := repos.Product.List(context.Background(), nil, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list products: %v\n", err)
		os.Exit(1)
	}

	for _, p := range products {
		flags := ""
		if !p.IsActive {
			flags += " [inactive]"
		}
		if p.IsTrending {
			flags += " [trending]"
		}
		fmt.Printf("%s | %-25s | ₹%-10.2f | stock=%-4d%s\n",
			p.ID, p.Name, p.Price, p.StockQuantity, flags)
	}

	fmt.Printf("\nTotal: %d products\n", len(products))
}
