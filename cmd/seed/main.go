package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/wildtour/wildtour-backend/config"
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/internal/app/repository"
	"github.com/wildtour/wildtour-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports destinations and their activities from an XLSX workbook.
// Sheet "destinations": name, description, city, department, region,
// climate, best_season, highlights (| separated), image_url, latitude,
// longitude.
// Sheet "activities": destination_name, name, description, category,
// difficulty, duration_hours, price, currency, price_unit, tags
// (| separated), provider_name, business_name.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	destinationRepo := repository.NewDestinationRepository(db.GetDB())
	activityRepo := repository.NewActivityRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX:", err)
	}
	defer f.Close()

	destinations, err := readDestinations(f)
	if err != nil {
		log.Fatal("Failed to read destinations sheet:", err)
	}
	fmt.Printf("Total destinations to import: %d\n", len(destinations))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	if err := destinationRepo.BulkCreate(destinations, batchSize); err != nil {
		log.Fatal("Failed to bulk create destinations:", err)
	}
	fmt.Printf("Destinations imported: %d\n", len(destinations))

	activities, skipped, err := readActivities(f, destinationRepo)
	if err != nil {
		log.Fatal("Failed to read activities sheet:", err)
	}
	if len(activities) > 0 {
		if err := activityRepo.BulkCreate(activities, batchSize); err != nil {
			log.Fatal("Failed to bulk create activities:", err)
		}
	}
	fmt.Printf("Activities imported: %d (skipped: %d)\n", len(activities), skipped)
	fmt.Println("Import completed successfully!")
}

func readDestinations(f *excelize.File) ([]model.Destination, error) {
	rows, err := f.GetRows("destinations")
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("destinations sheet has no data rows")
	}

	seen := make(map[string]bool)
	var destinations []model.Destination

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 5 {
			continue
		}

		name := strings.TrimSpace(row[0])
		city := strings.TrimSpace(row[2])
		department := strings.TrimSpace(row[3])
		region := model.DestinationRegion(strings.TrimSpace(row[4]))
		if name == "" || city == "" || department == "" {
			continue
		}
		key := name + "|" + department
		if seen[key] {
			continue
		}
		seen[key] = true

		destination := model.Destination{
			Name:        name,
			Description: cell(row, 1),
			City:        city,
			Department:  department,
			Region:      region,
			Climate:     cell(row, 5),
			BestSeason:  cell(row, 6),
			Highlights:  splitList(cell(row, 7)),
			ImageURL:    cell(row, 8),
			Latitude:    parseFloat(cell(row, 9)),
			Longitude:   parseFloat(cell(row, 10)),
		}
		destinations = append(destinations, destination)
	}

	return destinations, nil
}

func readActivities(f *excelize.File, destinationRepo repository.DestinationRepository) ([]model.Activity, int, error) {
	rows, err := f.GetRows("activities")
	if err != nil {
		// Activities sheet is optional.
		return nil, 0, nil
	}
	if len(rows) < 2 {
		return nil, 0, nil
	}

	// destination name -> id lookup
	all, _, err := destinationRepo.FindAll(repository.DestinationQuery{Limit: 10000})
	if err != nil {
		return nil, 0, err
	}
	byName := make(map[string]uint, len(all))
	for _, d := range all {
		byName[d.Name] = d.ID
	}

	var activities []model.Activity
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 7 {
			skipped++
			continue
		}

		destinationID, ok := byName[strings.TrimSpace(row[0])]
		if !ok {
			skipped++
			continue
		}
		name := strings.TrimSpace(row[1])
		if name == "" {
			skipped++
			continue
		}

		activity := model.Activity{
			DestinationID: destinationID,
			Name:          name,
			Description:   cell(row, 2),
			Category:      model.ActivityCategory(cell(row, 3)),
			Difficulty:    model.ActivityDifficulty(cell(row, 4)),
			DurationHours: parseFloat(cell(row, 5)),
			Price:         parseFloat(cell(row, 6)),
			Currency:      defaultStr(cell(row, 7), "COP"),
			PriceUnit:     defaultStr(cell(row, 8), "persona"),
			Tags:          splitList(cell(row, 9)),
			ProviderName:  cell(row, 10),
			BusinessName:  cell(row, 11),
			Available:     true,
		}
		activities = append(activities, activity)
	}

	return activities, skipped, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
