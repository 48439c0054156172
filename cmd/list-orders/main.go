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

	fmt.Println("📋 Listing recent orders:")

	orders, err := repos.Order.List(context.Background(), nil, 100, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
		os.Exit(1)
	}

	for _, o := range orders {
		coupon := "-"
		if o.CouponCode != nil {
			coupon = *o.CouponCode
		}
		fmt.Printf("%s | %-18s | %-12s | ₹%-10.2f | coupon=%-10s | %s\n",
			o.ID, o.CustomerName, o.Status, o.TotalAmount, coupon,
			o.CreatedAt.Format("2006-01-02 15:04"),
		)
		for _, p := range o.Products {
			variant := ""
			if p.Size != nil {
				variant += " size=" + *p.Size
			}
			if p.Color != nil {
				variant += " color=" + *p.Color
			}
			fmt.Printf("    %dx %s @ ₹%.2f%s\n", p.Quantity, p.Name, p.Price, variant)
		}
	}

	fmt.Printf("\nTotal: %d orders\n", len(orders))
}
