// Package spreadsheet reads and writes the product catalog as .xlsx workbooks.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
)

var _ catalogapp.ProductSheetCodec = (*XLSXCodec)(nil)

// ContentType is the MIME type of the workbooks this package writes
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheetName = "Products"

// Column keys, in export order
const (
	ColumnName        = "name"
	ColumnDescription = "description"
	ColumnPrice       = "price"
	ColumnStock       = "stock"
	ColumnCategory    = "category"
	ColumnBrand       = "brand"
)

var columns = []string{ColumnName, ColumnDescription, ColumnPrice, ColumnStock, ColumnCategory, ColumnBrand}

var (
	// ErrNoSheet is returned for a workbook without worksheets
	ErrNoSheet = errors.New("workbook has no worksheet")
	// ErrMissingHeader is returned when the first row lacks a required column
	ErrMissingHeader = errors.New("missing header")
)

// XLSXCodec implements catalog.ProductSheetCodec with tealeg/xlsx
type XLSXCodec struct {
	sheetName string
}

// NewXLSXCodec creates a codec writing to a sheet named "Products"
func NewXLSXCodec() *XLSXCodec {
	return &XLSXCodec{sheetName: defaultSheetName}
}

// headerTitle renders a column key as it appears in the header row.
// Casers keep state, so each call builds its own.
func headerTitle(col string) string {
	return cases.Title(language.English).String(col)
}

func headerKey(text string) string {
	return cases.Fold().String(strings.TrimSpace(text))
}

// WriteProducts writes a header row followed by one row per product
func (c *XLSXCodec) WriteProducts(w io.Writer, rows []catalogapp.ProductSheetRow) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(c.sheetName)
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().SetString(headerTitle(col))
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Name)
		row.AddCell().SetString(r.Description)
		row.AddCell().SetString(r.Price)
		row.AddCell().SetString(r.Stock)
		row.AddCell().SetString(r.CategoryName)
		row.AddCell().SetString(r.BrandName)
	}

	return file.Write(w)
}

// ReadProducts reads the first worksheet. Columns are located by header
// name, case-insensitively, so their order does not matter. Blank rows are
// skipped; Line is the 1-based row number in the sheet.
func (c *XLSXCodec) ReadProducts(r io.ReaderAt, size int64) ([]catalogapp.ProductSheetRow, error) {
	file, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, ErrNoSheet
	}
	sheet := file.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMissingHeader, sheet.Name)
	}

	index, err := headerIndex(sheet.Rows[0])
	if err != nil {
		return nil, err
	}

	var out []catalogapp.ProductSheetRow
	for i, row := range sheet.Rows[1:] {
		if row == nil {
			continue
		}
		get := func(col string) string {
			idx := index[col]
			if idx >= 0 && idx < len(row.Cells) && row.Cells[idx] != nil {
				return strings.TrimSpace(row.Cells[idx].String())
			}
			return ""
		}
		parsed := catalogapp.ProductSheetRow{
			Line:         i + 2,
			Name:         get(ColumnName),
			Description:  get(ColumnDescription),
			Price:        get(ColumnPrice),
			Stock:        get(ColumnStock),
			CategoryName: get(ColumnCategory),
			BrandName:    get(ColumnBrand),
		}
		if isBlank(parsed) {
			continue
		}
		out = append(out, parsed)
	}
	return out, nil
}

func headerIndex(row *xlsx.Row) (map[string]int, error) {
	index := make(map[string]int, len(columns))
	if row != nil {
		for i, cell := range row.Cells {
			if cell == nil {
				continue
			}
			key := headerKey(cell.String())
			if _, seen := index[key]; !seen {
				index[key] = i
			}
		}
	}

	var missing []string
	for _, col := range columns {
		if _, ok := index[col]; !ok && col != ColumnDescription {
			missing = append(missing, headerTitle(col))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingHeader, strings.Join(missing, ", "))
	}
	if _, ok := index[ColumnDescription]; !ok {
		index[ColumnDescription] = -1
	}
	return index, nil
}

func isBlank(r catalogapp.ProductSheetRow) bool {
	return r.Name == "" && r.Description == "" && r.Price == "" && r.Stock == "" && r.CategoryName == "" && r.BrandName == ""
}
