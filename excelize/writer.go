// Package excelize writes analysis records to an Excel spreadsheet.
package excelize

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sitedigest/sitedigest"
	"github.com/xuri/excelize/v2"
)

// Columns is the fixed header row of the output spreadsheet.
var Columns = []string{"Title", "URL", "Summary"}

// Ensure Writer implements sitedigest.RecordWriter at compile time.
var _ sitedigest.RecordWriter = (*Writer)(nil)

// Writer serializes records into an .xlsx file.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteRecords writes the records to path: a header row followed by one row
// per record, in order. Parent directories are created as needed and an
// existing file at path is overwritten.
func (w *Writer) WriteRecords(ctx context.Context, path string, records []sitedigest.BlogRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return sitedigest.Errorf(sitedigest.EINVALID, "output path required")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return sitedigest.Errorf(sitedigest.EIO, "writing header row: %v", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return sitedigest.Errorf(sitedigest.EIO, "computing cell for row %d: %v", i+2, err)
		}
		row := []any{rec.Title, rec.URL, rec.Summary}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return sitedigest.Errorf(sitedigest.EIO, "writing row %d: %v", i+2, err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return sitedigest.Errorf(sitedigest.EIO, "creating output directory %s: %v", dir, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return sitedigest.Errorf(sitedigest.EIO, "writing spreadsheet %s: %v", path, err)
	}

	return nil
}
