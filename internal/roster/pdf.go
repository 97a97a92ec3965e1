package roster

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// convertTimeout bounds the external LibreOffice invocation; a hung
// soffice process must not stall a scheduled run forever.
const convertTimeout = 2 * time.Minute

// ConvertToPDF renders a spreadsheet to PDF via a headless LibreOffice
// invocation. The PDF lands next to the input file. Fails when the
// tool is missing, exits non-zero, or times out.
func ConvertToPDF(xlsxPath string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), convertTimeout)
	defer cancel()

	outDir := filepath.Dir(xlsxPath)
	cmd := exec.CommandContext(ctx, "soffice",
		"--headless", "--convert-to", "pdf", "--outdir", outDir, xlsxPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("soffice conversion of %s failed: %v: %s",
			xlsxPath, err, strings.TrimSpace(string(out)))
	}

	return strings.TrimSuffix(xlsxPath, filepath.Ext(xlsxPath)) + ".pdf", nil
}
