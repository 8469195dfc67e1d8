// Package sheet reads counselor import spreadsheets before they are uploaded,
// so obviously broken files are caught without a round trip to the backend.
package sheet

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var (
	ErrNoWorksheet    = errors.New("workbook has no worksheet")
	ErrEmptyWorksheet = errors.New("worksheet is empty")
)

// Column headers accepted for the fields the preflight checks. Matching is
// case-insensitive and ignores surrounding space.
var (
	NameHeaders  = []string{"counselor_name", "name", "姓名", "咨询师姓名"}
	PhoneHeaders = []string{"phone", "手机号", "电话"}
)

// TemplateHeaders is the header row of a fresh import template.
var TemplateHeaders = []string{
	"counselor_name", "phone", "school", "major", "consulting_price",
	"consulting_method", "location", "personal_intro",
}

type Row struct {
	Line   int // 1-based row number in the worksheet
	Name   string
	Phone  string
	Values map[string]string // by header as written in the sheet
}

type Summary struct {
	Sheet   string
	Headers []string
	Rows    []Row

	MissingColumns  []string
	BlankNames      []int            // lines whose name is empty
	DuplicatePhones map[string][]int // phone to the lines it appears on
}

// Inspect reads the first worksheet of an xlsx workbook.
func Inspect(r io.Reader) (*Summary, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoWorksheet
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, errors.Wrapf(err, "read worksheet %q", sheetName)
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(ErrEmptyWorksheet, "worksheet %q", sheetName)
	}
	return summarize(sheetName, rows), nil
}

func summarize(sheetName string, rows [][]string) *Summary {
	s := &Summary{
		Sheet:           sheetName,
		DuplicatePhones: map[string][]int{},
	}
	for _, h := range rows[0] {
		s.Headers = append(s.Headers, strings.TrimSpace(h))
	}

	nameIdx := headerIndex(s.Headers, NameHeaders)
	phoneIdx := headerIndex(s.Headers, PhoneHeaders)
	if nameIdx < 0 {
		s.MissingColumns = append(s.MissingColumns, NameHeaders[0])
	}
	if phoneIdx < 0 {
		s.MissingColumns = append(s.MissingColumns, PhoneHeaders[0])
	}

	seen := map[string][]int{}
	for i, raw := range rows[1:] {
		if blank(raw) {
			continue
		}
		row := Row{
			Line:   i + 2,
			Name:   cellValue(raw, nameIdx),
			Phone:  normalizePhone(cellValue(raw, phoneIdx)),
			Values: make(map[string]string, len(s.Headers)),
		}
		for col, h := range s.Headers {
			if h != "" {
				row.Values[h] = cellValue(raw, col)
			}
		}
		if nameIdx >= 0 && row.Name == "" {
			s.BlankNames = append(s.BlankNames, row.Line)
		}
		if row.Phone != "" {
			seen[row.Phone] = append(seen[row.Phone], row.Line)
		}
		s.Rows = append(s.Rows, row)
	}
	for phone, lines := range seen {
		if len(lines) > 1 {
			s.DuplicatePhones[phone] = lines
		}
	}
	return s
}

// Problems lists everything that would make the import fail, in a stable
// order. An empty result means the sheet looks importable.
func (s *Summary) Problems() []string {
	var problems []string
	for _, col := range s.MissingColumns {
		problems = append(problems, fmt.Sprintf("missing column %q", col))
	}
	if len(s.Rows) == 0 {
		problems = append(problems, "no data rows")
	}
	for _, line := range s.BlankNames {
		problems = append(problems, fmt.Sprintf("row %d: name is blank", line))
	}

	phones := make([]string, 0, len(s.DuplicatePhones))
	for phone := range s.DuplicatePhones {
		phones = append(phones, phone)
	}
	sort.Strings(phones)
	for _, phone := range phones {
		problems = append(problems, fmt.Sprintf("phone %s appears on rows %s", phone, joinLines(s.DuplicatePhones[phone])))
	}
	return problems
}

func (s *Summary) Valid() bool {
	return len(s.Problems()) == 0
}

// Write builds a one-sheet workbook from a header row and data rows.
func Write(w io.Writer, headers []string, rows [][]string) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	all := append([][]string{headers}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrapf(err, "row %d", i+1)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := file.SetSheetRow(sheetName, cell, &values); err != nil {
			return errors.Wrapf(err, "write row %d", i+1)
		}
	}
	return errors.Wrap(file.Write(w), "write workbook")
}

// Template writes an empty import template.
func Template(w io.Writer) error {
	return Write(w, TemplateHeaders, nil)
}

func headerIndex(headers []string, accepted []string) int {
	for i, h := range headers {
		for _, a := range accepted {
			if strings.EqualFold(h, a) {
				return i
			}
		}
	}
	return -1
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func normalizePhone(p string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(p)
}

func joinLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ", ")
}
