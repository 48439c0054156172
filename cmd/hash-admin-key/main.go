package main

import (
	"fmt"
	"os"

	"github.com/nirajd1102/shopping-website/internal/api/middleware"
)

// Prints the bcrypt hash for an admin API key, for the ADMIN_API_KEY_HASH
// environment variable.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: hash-admin-key <api-key>")
		os.Exit(1)
	}

	hash, err := middleware.HashAPIKey(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
