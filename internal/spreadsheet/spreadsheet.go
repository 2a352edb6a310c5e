package spreadsheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"atlas/internal/catalog"
)

// SheetName is the worksheet records are written to and read from.
const SheetName = "Records"

var columns = []string{
	"id",
	"title",
	"description",
	"location",
	"price",
	"history",
	"image_url",
	"image_name",
	"created_at",
}

// Row is one imported spreadsheet line before it becomes a record. RowNumber
// is the 1-based worksheet row, kept for validation messages.
type Row struct {
	RowNumber   int
	ID          string
	Title       string
	Description string
	Location    string
	Price       string
	History     string
	ImageURL    string
	ImageName   string
}

// RowError describes why a row cannot be imported.
type RowError struct {
	RowNumber int
	Reason    string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.RowNumber, e.Reason)
}

// Export writes records to an xlsx file at path, one row per record plus a
// header row.
func Export(path string, records []*catalog.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, record := range records {
		values := []any{
			record.ID,
			record.Title,
			record.Description,
			record.Location,
			record.Price,
			record.History,
			record.ImageURL,
			record.ImageName,
			record.CreatedAt.Format(time.RFC3339),
		}
		if err := setRow(f, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Import reads rows from an xlsx file. Column order must match Export's
// layout; the header row is skipped. Cell values are trimmed.
func Import(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheet := SheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var rows []Row
	for i, cells := range raw {
		if i == 0 {
			continue
		}
		if isEmpty(cells) {
			continue
		}
		rows = append(rows, Row{
			RowNumber:   i + 1,
			ID:          cell(cells, 0),
			Title:       cell(cells, 1),
			Description: cell(cells, 2),
			Location:    cell(cells, 3),
			Price:       cell(cells, 4),
			History:     cell(cells, 5),
			ImageURL:    cell(cells, 6),
			ImageName:   cell(cells, 7),
		})
	}
	return rows, nil
}

// Validate checks imported rows against the catalogue rules for a category:
// title and description are always required, and location is required except
// for feature records. It returns one error per offending row.
func Validate(rows []Row, category catalog.Category) []RowError {
	var errs []RowError
	for _, row := range rows {
		if row.Title == "" {
			errs = append(errs, RowError{RowNumber: row.RowNumber, Reason: "title is required"})
		}
		if row.Description == "" {
			errs = append(errs, RowError{RowNumber: row.RowNumber, Reason: "description is required"})
		}
		if category.RequiresLocation() && row.Location == "" {
			errs = append(errs, RowError{RowNumber: row.RowNumber, Reason: "location is required"})
		}
	}
	return errs
}

// ToRecord converts an imported row into a record for the given category.
func ToRecord(row Row, category catalog.Category) catalog.Record {
	return catalog.Record{
		Category:    category,
		Title:       row.Title,
		Description: row.Description,
		Location:    row.Location,
		Price:       row.Price,
		History:     row.History,
		ImageURL:    row.ImageURL,
		ImageName:   row.ImageName,
	}
}

func setRow(f *excelize.File, rowNumber int, values []any) error {
	cellRef, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return fmt.Errorf("cell reference for row %d: %w", rowNumber, err)
	}
	if err := f.SetSheetRow(SheetName, cellRef, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNumber, err)
	}
	return nil
}

func cell(cells []string, index int) string {
	if index >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[index])
}

func isEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
