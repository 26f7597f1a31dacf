package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"felt/cmd"
	"felt/internal/hours"
	"felt/internal/model"
	"felt/internal/places"
	"felt/internal/store"
	"felt/internal/ui"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open the shared directory when a DSN is configured, else a
	// local database.
	var st store.Store
	if config.PostgresDSN != "" {
		pg, err := store.OpenPostgres(config.PostgresDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to directory: %v\n", err)
			os.Exit(1)
		}
		st = pg
	} else {
		local, err := store.OpenSQLite(config.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
			os.Exit(1)
		}
		if config.SeedPath != "" {
			if err := seedVenues(local, config.SeedPath); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to seed venues: %v\n", err)
				os.Exit(1)
			}
		}
		st = local
	}
	defer st.Close()

	// Live opening hours need a Places API key; without one the app
	// serves whatever is cached.
	var refresher *hours.Refresher
	if config.PlacesAPIKey != "" {
		refresher = hours.NewRefresher(places.NewClient(config.PlacesAPIKey), st)
	} else {
		refresher = hours.NewRefresher(nil, st)
		fmt.Fprintln(os.Stderr, "ℹ  No PLACES_API_KEY set — opening hours served from cache only")
	}

	locator := places.NewLocator()

	// Create and run Bubble Tea app
	p := tea.NewProgram(ui.New(st, refresher, locator), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

type seedVenue struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Neighborhood string  `json:"neighborhood"`
	Address      string  `json:"address"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	TableCount   *int    `json:"table_count"`
	Price        string  `json:"price"`
	PlaceID      string  `json:"place_id"`
}

// seedVenues imports a JSON venue list into a local database. Existing
// rows win; seeding the same file twice is harmless.
func seedVenues(s *store.SQLite, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seeds []seedVenue
	if err := json.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	ctx := context.Background()
	for _, sv := range seeds {
		v := model.Venue{
			ID:           sv.ID,
			Name:         sv.Name,
			Neighborhood: sv.Neighborhood,
			Address:      sv.Address,
			Coord:        model.Coord{Lat: sv.Lat, Lng: sv.Lng},
			TableCount:   sv.TableCount,
			Price:        sv.Price,
			PlaceID:      sv.PlaceID,
		}
		if err := s.InsertVenue(ctx, v); err != nil {
			return fmt.Errorf("failed to seed %q: %w", sv.Name, err)
		}
	}
	return nil
}
