// verify-timelines replays the load/extract history of every reactor vessel
// and reports integrity violations. Exits 3 when any vessel fails.
//
// Usage (from backend directory):
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/verify-timelines [-json]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bitbucket.org/ksar/surveillance_backend/config"
	"bitbucket.org/ksar/surveillance_backend/models"
	"bitbucket.org/ksar/surveillance_backend/surveillance"
	"github.com/sirupsen/logrus"
)

func main() {
	asJSON := flag.Bool("json", false, "Log one JSON line per vessel")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if *asJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	checks, err := models.CheckAllVessels(context.Background(), db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify failed: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, check := range checks {
		entry := logger.WithFields(logrus.Fields{
			"vessel_id": check.VesselId,
			"unit_id":   check.UnitId,
			"loads":     check.Loads,
			"extracts":  check.Extracts,
		})
		if check.Err == nil {
			entry.Info("timeline ok")
			continue
		}
		failed++
		if ie, ok := surveillance.AsIntegrityError(check.Err); ok {
			entry = entry.WithFields(logrus.Fields{
				"violation":           ie.Kind(),
				"placement_id":        ie.PlacementID,
				"container_system_id": ie.ContainerSystemID,
				"load_ids":            ie.LoadIDs,
				"extract_id":          ie.ExtractID,
			})
		}
		entry.Error(check.Err.Error())
	}

	fmt.Printf("checked %d vessels, %d with violations\n", len(checks), failed)
	if failed > 0 {
		os.Exit(3)
	}
}
