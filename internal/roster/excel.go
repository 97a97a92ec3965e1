package roster

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkoike/shiftworks-backend/internal/shift/models"
)

const sheetName = "シフト"

// BuildWorkbook lays the shifts of one period range out as a grid:
// row 1 is the header, column A the staff name, and every day of
// [first, last] owns a (start, end) column pair. Days without a shift
// for a staff member stay blank. The column pair for the i-th day of
// the range (0-based) sits at columns 2+2i and 3+2i.
func BuildWorkbook(shifts []models.Shift, first, last time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheetName)

	days := int(last.Sub(first).Hours()/24) + 1

	if err := setCell(f, 1, 1, "名前"); err != nil {
		return nil, err
	}
	for i := 0; i < days; i++ {
		d := first.AddDate(0, 0, i)
		if err := setCell(f, 2+2*i, 1, fmt.Sprintf("%d日 開始", d.Day())); err != nil {
			return nil, err
		}
		if err := setCell(f, 3+2*i, 1, fmt.Sprintf("%d日 終了", d.Day())); err != nil {
			return nil, err
		}
	}

	// group by staff, then emit rows in name order so output is stable
	byStaff := make(map[string]map[string]models.Shift)
	for _, sh := range shifts {
		key := sh.WorkDate.Format("2006-01-02")
		if byStaff[sh.StaffName] == nil {
			byStaff[sh.StaffName] = make(map[string]models.Shift)
		}
		byStaff[sh.StaffName][key] = sh
	}
	names := make([]string, 0, len(byStaff))
	for name := range byStaff {
		names = append(names, name)
	}
	sort.Strings(names)

	for r, name := range names {
		row := r + 2
		if err := setCell(f, 1, row, name); err != nil {
			return nil, err
		}
		for i := 0; i < days; i++ {
			d := first.AddDate(0, 0, i)
			start, end := "", ""
			if sh, ok := byStaff[name][d.Format("2006-01-02")]; ok {
				start, end = sh.StartTime, sh.EndTime
			}
			if err := setCell(f, 2+2*i, row, start); err != nil {
				return nil, err
			}
			if err := setCell(f, 3+2*i, row, end); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheetName, cell, value)
}
