package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/smartjanseva/janseva-api/internal/config"
)

// Removes stale OTP rows: everything verified, expired, or exhausted older
// than the retention window. Meant to run from cron.
func main() {
	retentionDays := flag.Int("retention-days", 7, "delete OTP rows older than this many days")
	dryRun := flag.Bool("dry-run", false, "count matching rows without deleting")
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	where := fmt.Sprintf(
		"(verified = TRUE OR expires_at < NOW() OR attempts >= max_attempts) AND created_at < NOW() - INTERVAL '%d days'",
		*retentionDays,
	)

	if *dryRun {
		var count int64
		if err := db.QueryRow("SELECT COUNT(*) FROM otp_records WHERE " + where).Scan(&count); err != nil {
			log.Fatalf("Failed to count stale OTP rows: %v", err)
		}
		fmt.Printf("Dry run: %d stale OTP rows would be deleted\n", count)
		return
	}

	result, err := db.Exec("DELETE FROM otp_records WHERE " + where)
	if err != nil {
		log.Fatalf("Failed to purge OTP rows: %v", err)
	}

	deleted, _ := result.RowsAffected()
	fmt.Printf("Purged %d stale OTP rows\n", deleted)
}
