package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sumitRND/PresenceBackend/internal/config"
	"github.com/sumitRND/PresenceBackend/internal/domain/calendar"
	"github.com/sumitRND/PresenceBackend/internal/pkg/database"
	"github.com/sumitRND/PresenceBackend/internal/repository/postgresql"
)

// holidayInput is one row of the holiday list file:
// [{"date": "2026-01-26", "description": "Republic Day"}, ...]
type holidayInput struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

func main() {
	year := flag.Int("year", time.Now().Year(), "year to seed")
	holidayFile := flag.String("holidays", "", "path to a JSON holiday list")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	holidays := make(map[string]string)
	if *holidayFile != "" {
		data, err := os.ReadFile(*holidayFile)
		if err != nil {
			fmt.Println("Error reading holiday list:", err)
			os.Exit(1)
		}
		var inputs []holidayInput
		if err := json.Unmarshal(data, &inputs); err != nil {
			fmt.Println("Error parsing holiday list:", err)
			os.Exit(1)
		}
		for _, input := range inputs {
			if _, err := time.Parse("2006-01-02", input.Date); err != nil {
				fmt.Printf("Skipping invalid holiday date %q\n", input.Date)
				continue
			}
			holidays[input.Date] = input.Description
		}
	}

	repo := postgresql.NewCalendarRepository(db)
	ctx := context.Background()

	seeded := 0
	for day := time.Date(*year, 1, 1, 0, 0, 0, 0, time.UTC); day.Year() == *year; day = day.AddDate(0, 0, 1) {
		entry := calendar.Entry{
			Date:      day,
			IsWeekend: day.Weekday() == time.Saturday || day.Weekday() == time.Sunday,
		}
		if description, ok := holidays[day.Format("2006-01-02")]; ok {
			entry.IsHoliday = true
			entry.Description = &description
		}

		if err := repo.Upsert(ctx, entry); err != nil {
			fmt.Printf("Error seeding %s: %v\n", day.Format("2006-01-02"), err)
			os.Exit(1)
		}
		seeded++
	}

	fmt.Printf("Seeded %d calendar entries for %d (%d holidays)\n", seeded, *year, len(holidays))
}
