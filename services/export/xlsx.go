// Package exportsvc renders table records as xlsx workbooks.
package exportsvc

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	dateFormat   = "yyyy-mm-dd"
	maxSheetName = 31
	maxColWidth  = 50
	minColWidth  = 10
	firstDataRow = 2
)

var invalidSheetChars = regexp.MustCompile(`[:\\/?*\[\]]`)

// Filename returns the export file name of resource at t, eg: fees-20240603.xlsx.
func Filename(resource string, t time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", resource, t.Format("20060102"))
}

// SheetName turns title into a valid worksheet name.
func SheetName(title string) string {
	name := invalidSheetChars.ReplaceAllString(title, " ")
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}

// Workbook writes records on one sheet: a bold header row with the column headers
// followed by one row per record, in order. Time values get a date format.
func Workbook[T any](title string, records []T, cols []table.Column[T]) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(title)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "creating header style")
	}
	dateFmt := dateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, errors.Wrap(err, "creating date style")
	}

	header := make([]interface{}, len(cols))
	widths := make([]int, len(cols))
	for i, c := range cols {
		header[i] = c.Header
		widths[i] = utf8.RuneCountInString(c.Header)
	}
	if err = f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "writing header")
	}

	for r, rec := range records {
		for i, c := range cols {
			cell, err := excelize.CoordinatesToCellName(i+1, r+firstDataRow)
			if err != nil {
				return nil, err
			}
			v := c.Value(rec)
			tm, isTime := v.(time.Time)
			if isTime && tm.IsZero() {
				continue
			}
			if err = f.SetCellValue(sheet, cell, v); err != nil {
				return nil, errors.Wrapf(err, "writing %s", cell)
			}
			if isTime {
				if err = f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
					return nil, errors.Wrapf(err, "styling %s", cell)
				}
				v = tm.Format(table.DateLayout)
			}
			if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	if len(cols) > 0 {
		last, err := excelize.ColumnNumberToName(len(cols))
		if err != nil {
			return nil, err
		}
		if err = f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
			return nil, errors.Wrap(err, "styling header")
		}
		if err = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return nil, errors.Wrap(err, "freezing header")
		}
		for i, w := range widths {
			name, _ := excelize.ColumnNumberToName(i + 1)
			if err = f.SetColWidth(sheet, name, name, float64(clamp(w+2, minColWidth, maxColWidth))); err != nil {
				return nil, errors.Wrap(err, "sizing columns")
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buf.Bytes(), nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
