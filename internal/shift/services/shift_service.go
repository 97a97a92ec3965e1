package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mkoike/shiftworks-backend/internal/shift/models"
)

type ShiftService struct {
	DB *sql.DB
}

func NewShiftService(db *sql.DB) *ShiftService {
	return &ShiftService{DB: db}
}

// Upsert inserts the entry, or replaces the stored times and period
// tag when a row for the same (staff_name, work_date) already exists.
// The unique key on the table makes this atomic even with concurrent
// writers.
func (s *ShiftService) Upsert(e models.ShiftEntry) error {
	if e.StaffName == "" {
		return fmt.Errorf("staff_name must not be empty")
	}
	if _, err := time.Parse("15:04", e.StartTime); err != nil {
		return fmt.Errorf("start_time %q is not valid: %v", e.StartTime, err)
	}
	if _, err := time.Parse("15:04", e.EndTime); err != nil {
		return fmt.Errorf("end_time %q is not valid: %v", e.EndTime, err)
	}

	_, err := s.DB.Exec(
		`INSERT INTO Shift (staff_name, work_date, start_time, end_time, period_tag)
		 VALUES (?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   start_time = VALUES(start_time),
		   end_time   = VALUES(end_time),
		   period_tag = VALUES(period_tag)`,
		e.StaffName, e.WorkDate.Format("2006-01-02"), e.StartTime+":00", e.EndTime+":00", e.PeriodTag)
	if err != nil {
		return fmt.Errorf("failed to upsert shift for %s on %s: %v",
			e.StaffName, e.WorkDate.Format("2006-01-02"), err)
	}
	return nil
}

// UpsertAll stores a parsed batch inside one transaction; the webhook
// request either lands every entry or none of them.
func (s *ShiftService) UpsertAll(entries []models.ShiftEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := tx.Exec(
			`INSERT INTO Shift (staff_name, work_date, start_time, end_time, period_tag)
			 VALUES (?, ?, ?, ?, ?)
			 ON DUPLICATE KEY UPDATE
			   start_time = VALUES(start_time),
			   end_time   = VALUES(end_time),
			   period_tag = VALUES(period_tag)`,
			e.StaffName, e.WorkDate.Format("2006-01-02"), e.StartTime+":00", e.EndTime+":00", e.PeriodTag); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert shift for %s on %s: %v",
				e.StaffName, e.WorkDate.Format("2006-01-02"), err)
		}
	}
	return tx.Commit()
}

// QueryRange returns every shift whose work_date lies within the
// inclusive [first, last] range, in no particular order.
func (s *ShiftService) QueryRange(first, last time.Time) ([]models.Shift, error) {
	rows, err := s.DB.Query(
		`SELECT id_shift, staff_name, work_date, start_time, end_time, period_tag
		   FROM Shift
		  WHERE work_date BETWEEN ? AND ?`,
		first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %v", err)
	}
	defer rows.Close()

	var shifts []models.Shift
	for rows.Next() {
		var (
			sh         models.Shift
			start, end string
		)
		if err := rows.Scan(&sh.IDShift, &sh.StaffName, &sh.WorkDate, &start, &end, &sh.PeriodTag); err != nil {
			return nil, err
		}
		// TIME columns come back as "HH:MM:SS"
		sh.StartTime = trimSeconds(start)
		sh.EndTime = trimSeconds(end)
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

func trimSeconds(t string) string {
	if len(t) == 8 {
		return t[:5]
	}
	return t
}
