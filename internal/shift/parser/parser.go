package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mkoike/shiftworks-backend/internal/shift/models"
	"github.com/mkoike/shiftworks-backend/internal/shift/period"
)

// Submission formats accepted from the group chat:
//
//	inline:       5/12 10:00-18:00         (one shift per line, sender known)
//	header+table: 名前：山田太郎             (name header, then day rows)
//	              12日 10:00 18:00
var (
	lineRE   = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})\s+(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})`)
	nameRE   = regexp.MustCompile(`名前[：:]\s*(.+)`)
	dayRowRE = regexp.MustCompile(`(\d{1,2})日\s+(\d{1,2}):(\d{2})\s+(\d{1,2}):(\d{2})`)
)

// ParseLine extracts one inline shift from a single line of text. The
// second return value is false when the line carries no entry; callers
// skip such lines silently.
//
// The year defaults to ref's year, except that a December date parsed
// in January belongs to the previous year (year-end submissions for
// the prior December).
func ParseLine(line string, ref time.Time) (models.ShiftEntry, bool) {
	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return models.ShiftEntry{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])

	year := ref.Year()
	if month == 12 && ref.Month() == time.January {
		year--
	}

	workDate, ok := makeDate(year, month, day)
	if !ok {
		return models.ShiftEntry{}, false
	}
	start, ok := makeClock(m[3], m[4])
	if !ok {
		return models.ShiftEntry{}, false
	}
	end, ok := makeClock(m[5], m[6])
	if !ok {
		return models.ShiftEntry{}, false
	}

	return models.ShiftEntry{
		WorkDate:  workDate,
		StartTime: start,
		EndTime:   end,
		PeriodTag: string(period.TagFor(workDate)),
	}, true
}

// ParseMessage walks an inline-mode message body and collects every
// matching line as an entry for staffName. Blank and non-matching
// lines are skipped; an empty body yields an empty slice.
func ParseMessage(body, staffName string, ref time.Time) []models.ShiftEntry {
	entries := []models.ShiftEntry{}
	for _, line := range strings.Split(body, "\n") {
		e, ok := ParseLine(line, ref)
		if !ok {
			continue
		}
		e.StaffName = staffName
		entries = append(entries, e)
	}
	return entries
}

// ParseHeaderMessage handles the header+table mode: a 名前 header
// names the staff member and each following row carries only a
// day-of-month, so the caller supplies the month being collected.
// A body without a name header yields no entries.
func ParseHeaderMessage(body string, year int, month time.Month) []models.ShiftEntry {
	entries := []models.ShiftEntry{}
	nm := nameRE.FindStringSubmatch(body)
	if nm == nil {
		return entries
	}
	name := strings.TrimSpace(nm[1])

	for _, line := range strings.Split(body, "\n") {
		m := dayRowRE.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		workDate, ok := makeDate(year, int(month), day)
		if !ok {
			continue
		}
		start, ok := makeClock(m[2], m[3])
		if !ok {
			continue
		}
		end, ok := makeClock(m[4], m[5])
		if !ok {
			continue
		}
		entries = append(entries, models.ShiftEntry{
			StaffName: name,
			WorkDate:  workDate,
			StartTime: start,
			EndTime:   end,
			PeriodTag: string(period.TagFor(workDate)),
		})
	}
	return entries
}

// FormatEntry renders an entry back to its inline form,
// "<month>/<day> <start>-<end>".
func FormatEntry(e models.ShiftEntry) string {
	return fmt.Sprintf("%d/%d %s-%s",
		int(e.WorkDate.Month()), e.WorkDate.Day(), e.StartTime, e.EndTime)
}

// makeDate builds a date and rejects values the calendar does not
// have (month 13, February 30th, ...).
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func makeClock(hh, mm string) (string, bool) {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}
