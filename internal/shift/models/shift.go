package models

import "time"

// ShiftEntry is a parsed shift wish before persistence. Entries are
// uniquely identified by (StaffName, WorkDate); a later entry for the
// same key replaces the earlier one.
type ShiftEntry struct {
	StaffName string    `json:"staff_name"`
	WorkDate  time.Time `json:"work_date"`  // date only, zero time-of-day
	StartTime string    `json:"start_time"` // Format: "15:04"
	EndTime   string    `json:"end_time"`   // Format: "15:04"
	PeriodTag string    `json:"period_tag"` // "first_half" / "second_half"
}

// Shift is a persisted row of the Shift table.
type Shift struct {
	IDShift   int64     `json:"id_shift"`
	StaffName string    `json:"staff_name"`
	WorkDate  time.Time `json:"work_date"`
	StartTime string    `json:"start_time"` // Format: "15:04"
	EndTime   string    `json:"end_time"`   // Format: "15:04"
	PeriodTag string    `json:"period_tag"`
}
