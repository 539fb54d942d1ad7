package config

import (
	"os"
	"sync"

	"bitbucket.org/ksar/surveillance_backend/surveillance"
)

var (
	geometry     *surveillance.Geometry
	geometryOnce sync.Once
)

// GetGeometry returns the placement drawing coordinates, loaded once.
// PLACEMENT_GEOMETRY_FILE overrides the built-in tables; a broken file falls
// back to the defaults with an error log.
func GetGeometry() *surveillance.Geometry {
	geometryOnce.Do(func() {
		geometry = loadGeometry(os.Getenv("PLACEMENT_GEOMETRY_FILE"))
	})
	return geometry
}

func loadGeometry(path string) *surveillance.Geometry {
	if path == "" {
		return surveillance.DefaultGeometry()
	}
	f, err := os.Open(path)
	if err != nil {
		LogError(logg, "config", "loadGeometry", "open "+path, nil, err)
		return surveillance.DefaultGeometry()
	}
	defer f.Close()
	g, err := surveillance.LoadGeometry(f)
	if err != nil {
		LogError(logg, "config", "loadGeometry", "parse "+path, nil, err)
		return surveillance.DefaultGeometry()
	}
	return g
}
