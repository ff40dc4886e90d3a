package loader

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/KaramelBytes/surveyloom/internal/survey"
	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

// Load reads the selected worksheet. If SheetName is empty, SheetIndex
// (1-based, default 1) picks the sheet in workbook order. Numbers are read
// unformatted; date-formatted cells become ISO dates (survey.DateLayout).
func (xlsxLoader) Load(path string, opt Options) (*survey.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), filepath.Base(path), opt)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	name := filepath.Base(path)
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s (sheet: %s): %w", name, sheet, ErrEmptyInput)
	}
	tb, err := newTableBuilder(name, rows[0], opt)
	if err != nil {
		return nil, err
	}
	dates := newDateCells(f, sheet)
	for i, rec := range rows[1:] {
		if len(rec) == 0 {
			continue
		}
		if err := dates.convert(rec, i+2); err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", sheet, i+2, err)
		}
		if err := tb.add(rec); err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", sheet, i+2, err)
		}
	}
	return tb.finish(opt), nil
}

// dateCells rewrites raw date serials to ISO text, looking up each numeric
// cell's number format once per style.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	isDate   map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{f: f, sheet: sheet, isDate: map[int]bool{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateCells) convert(rec []string, row int) error {
	for c, raw := range rec {
		serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(c+1, row)
		if err != nil {
			return err
		}
		styleID, err := d.f.GetCellStyle(d.sheet, cell)
		if err != nil {
			return err
		}
		isDate, ok := d.isDate[styleID]
		if !ok {
			isDate = d.styleIsDate(styleID)
			d.isDate[styleID] = isDate
		}
		if !isDate {
			continue
		}
		t, err := excelize.ExcelDateToTime(serial, d.date1904)
		if err != nil {
			return fmt.Errorf("cell %s: %w", cell, err)
		}
		rec[c] = survey.FormatDate(t)
	}
	return nil
}

func (d *dateCells) styleIsDate(styleID int) bool {
	style, err := d.f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormat(*style.CustomNumFmt)
	}
	return isBuiltInDateFmt(style.NumFmt)
}

// isBuiltInDateFmt reports the built-in number format ids that render dates
// or times, including the East Asian locale ranges.
func isBuiltInDateFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

var quotedOrBracketed = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

// isDateFormat reports whether a custom format code has date or hour tokens
// outside literals.
func isDateFormat(code string) bool {
	code = strings.ToLower(quotedOrBracketed.ReplaceAllString(code, ""))
	return strings.ContainsAny(code, "ydh")
}

func pickSheet(sheets []string, file string, opt Options) (string, error) {
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
			opt.SheetName, file, strings.Join(sheets, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range: workbook '%s' has %d sheet(s)", idx, file, len(sheets))
	}
	return sheets[idx-1], nil
}
