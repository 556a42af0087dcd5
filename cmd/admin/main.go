// Command admin is an operator CLI for tasks that have no HTTP surface:
// promoting users to admin and reviewing reports from the console.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"messenger/backend/internal/config"
	"messenger/backend/internal/models"
	"messenger/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: promote <user_id> | reports | resolve <report_id> <status>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "promote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin promote <user_id>")
			os.Exit(1)
		}
		userID := parseID(os.Args[2])
		if err := promoteUser(storageSvc, userID); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %d is now an admin.\n", userID)

	case "reports":
		reports, err := storageSvc.ListReports(config.ReportPageSize)
		if err != nil {
			log.Fatalf("Error listing reports: %v", err)
		}
		for _, r := range reports {
			fmt.Printf("#%d [%s] %s reported by %s: %s\n",
				r.ID, r.Status, r.ReportedUsername, r.ReportedByUsername, r.Reason)
		}

	case "resolve":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin resolve <report_id> <status>")
			os.Exit(1)
		}
		reportID := parseID(os.Args[2])
		if err := resolveReport(storageSvc, reportID, os.Args[3]); err != nil {
			log.Fatalf("Error resolving report: %v", err)
		}
		fmt.Printf("Report %d has been marked %s.\n", reportID, os.Args[3])

	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func parseID(s string) uint {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		fmt.Println("Invalid id. Please provide a positive integer.")
		os.Exit(1)
	}
	return uint(id)
}

func promoteUser(s storage.Storage, userID uint) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d not found", userID)
	}
	user.IsAdmin = true
	return s.UpdateUser(user)
}

func resolveReport(s storage.Storage, reportID uint, status string) error {
	report, err := s.GetReportByID(reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("report %d not found", reportID)
	}
	if status == "" {
		status = models.ReportStatusResolved
	}
	// Console reviews have no acting admin id; 0 marks them as such.
	return s.ReviewReport(reportID, status, 0)
}
