package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoike/shiftworks-backend/internal/shift/models"
)

func testEntry() models.ShiftEntry {
	return models.ShiftEntry{
		StaffName: "山田太郎",
		WorkDate:  time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "18:00",
		PeriodTag: "first_half",
	}
}

func TestUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewShiftService(db)

	mock.ExpectExec("INSERT INTO Shift").
		WithArgs("山田太郎", "2025-05-12", "10:00:00", "18:00:00", "first_half").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Upsert(testEntry()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertValidation(t *testing.T) {
	s := NewShiftService(nil)

	e := testEntry()
	e.StaffName = ""
	assert.Error(t, s.Upsert(e))

	e = testEntry()
	e.StartTime = "25:99"
	assert.Error(t, s.Upsert(e))

	e = testEntry()
	e.EndTime = "six pm"
	assert.Error(t, s.Upsert(e))
}

func TestUpsertAll(t *testing.T) {
	t.Run("batch lands in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		s := NewShiftService(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO Shift").
			WithArgs("山田太郎", "2025-05-12", "10:00:00", "18:00:00", "first_half").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO Shift").
			WithArgs("山田太郎", "2025-05-13", "09:00:00", "17:00:00", "first_half").
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		second := testEntry()
		second.WorkDate = second.WorkDate.AddDate(0, 0, 1)
		second.StartTime, second.EndTime = "09:00", "17:00"

		require.NoError(t, s.UpsertAll([]models.ShiftEntry{testEntry(), second}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure rolls the batch back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		s := NewShiftService(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO Shift").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		assert.Error(t, s.UpsertAll([]models.ShiftEntry{testEntry()}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch touches nothing", func(t *testing.T) {
		s := NewShiftService(nil)
		assert.NoError(t, s.UpsertAll(nil))
	})
}

func TestQueryRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewShiftService(db)

	rows := sqlmock.NewRows([]string{"id_shift", "staff_name", "work_date", "start_time", "end_time", "period_tag"}).
		AddRow(int64(1), "山田太郎", time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC), "10:00:00", "18:00:00", "first_half").
		AddRow(int64(2), "佐藤花子", time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), "09:00:00", "17:00:00", "first_half")

	mock.ExpectQuery("SELECT id_shift, staff_name, work_date, start_time, end_time, period_tag").
		WithArgs("2025-05-01", "2025-05-15").
		WillReturnRows(rows)

	shifts, err := s.QueryRange(
		time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, shifts, 2)

	assert.Equal(t, "山田太郎", shifts[0].StaffName)
	assert.Equal(t, "10:00", shifts[0].StartTime, "TIME columns are trimmed to HH:MM")
	assert.Equal(t, "18:00", shifts[0].EndTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}
