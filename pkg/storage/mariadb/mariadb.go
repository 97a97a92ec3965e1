package mariadb

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"

	"github.com/mkoike/shiftworks-backend/config"
)

// Connect opens the MariaDB connection pool described by cfg and
// verifies it with a ping.
func Connect(cfg *config.Config) *sql.DB {
	// DSN format: username:password@tcp(host:port)/dbname?parseTime=true&loc=Asia%2FTokyo
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Asia%%2FTokyo",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("failed to open database connection: %v", err)
	}
	if err = db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	log.Println("Connected to MariaDB.")
	return db
}

// EnsureSchema creates the Shift table if it does not exist yet. The
// unique key on (staff_name, work_date) backs the upsert semantics.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS Shift (
			id_shift    INT AUTO_INCREMENT PRIMARY KEY,
			staff_name  VARCHAR(100) NOT NULL,
			work_date   DATE         NOT NULL,
			start_time  TIME         NOT NULL,
			end_time    TIME         NOT NULL,
			period_tag  VARCHAR(16)  NOT NULL,
			UNIQUE KEY uq_staff_date (staff_name, work_date)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create Shift table: %v", err)
	}
	return nil
}
