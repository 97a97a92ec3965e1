package roster

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mkoike/shiftworks-backend/internal/shift/period"
	"github.com/mkoike/shiftworks-backend/internal/shift/services"
	"github.com/mkoike/shiftworks-backend/ws"
)

// Builder turns the stored shifts of one half-month into the
// distributable roster files. It takes explicit year/month/period
// arguments so scheduled and manual runs behave identically.
type Builder struct {
	Shifts *services.ShiftService
	OutDir string
	Hub    *ws.Hub // optional; nil disables notifications
}

func NewBuilder(shifts *services.ShiftService, outDir string, hub *ws.Hub) *Builder {
	return &Builder{Shifts: shifts, OutDir: outDir, Hub: hub}
}

// BuildHalf renders the roster for one half of the given month and
// converts it to PDF. Returns both output paths. A period with no
// stored shifts still produces a workbook with just the header row.
func (b *Builder) BuildHalf(year int, month time.Month, p period.Period) (string, string, error) {
	first, last := period.HalfRange(year, month, p)

	shifts, err := b.Shifts.QueryRange(first, last)
	if err != nil {
		return "", "", err
	}

	wb, err := BuildWorkbook(shifts, first, last)
	if err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(b.OutDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create output dir %s: %v", b.OutDir, err)
	}
	xlsxPath := filepath.Join(b.OutDir, period.FileStem(first, last)+".xlsx")
	if err := wb.SaveAs(xlsxPath); err != nil {
		return "", "", fmt.Errorf("failed to save workbook %s: %v", xlsxPath, err)
	}

	pdfPath, err := ConvertToPDF(xlsxPath)
	if err != nil {
		return "", "", err
	}

	log.Printf("roster built: %s (%d shifts)", pdfPath, len(shifts))
	if b.Hub != nil {
		b.Hub.Notify("roster_built", map[string]interface{}{
			"period": string(p),
			"xlsx":   xlsxPath,
			"pdf":    pdfPath,
			"shifts": len(shifts),
		})
	}
	return xlsxPath, pdfPath, nil
}
