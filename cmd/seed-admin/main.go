// seed-admin creates the console user or resets its password.
//
// Usage (from backend directory):
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//	ADMIN_PASSWORD=... go run ./cmd/seed-admin [-username admin] [-name "Administrator"]
//
// The password may also be passed with -password; the env var wins when both are set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/ksar/surveillance_backend/config"
	"bitbucket.org/ksar/surveillance_backend/models"
	"bitbucket.org/ksar/surveillance_backend/utils"
)

func main() {
	username := flag.String("username", envOr("ADMIN_USERNAME", "admin"), "Login name of the admin user")
	fullName := flag.String("name", envOr("ADMIN_NAME", "Administrator"), "Display name")
	password := flag.String("password", "", "Password (prefer ADMIN_PASSWORD)")
	flag.Parse()

	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		*password = v
	}
	if strings.TrimSpace(*username) == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "username and password are required (ADMIN_PASSWORD or -password)")
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	created, err := models.UpsertAdmin(context.Background(), db, *username, *fullName, *password)
	if err != nil {
		if errors.Is(err, utils.ErrorInvalidInput) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "failed to seed admin user: %v\n", err)
		os.Exit(1)
	}
	if created {
		fmt.Printf("Created admin user: username=%q\n", *username)
		return
	}
	fmt.Printf("Updated admin user: username=%q\n", *username)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
