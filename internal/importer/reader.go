package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: use .xlsx or .csv")
	ErrEmptyFile         = errors.New("file must contain a header row and at least one data row")
)

type dataRow struct {
	line  int
	cells []string
}

// readTable returns the header row and the data rows of the first sheet (xlsx)
// or of the whole file (csv). Blank rows are skipped; line numbers are 1-based
// positions in the file.
func readTable(filename string, r io.Reader) ([]string, []dataRow, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		rows, err = readExcel(r)
	case ".csv", ".txt":
		rows, err = readCSV(r)
	default:
		return nil, nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, nil, err
	}

	var (
		header []string
		data   []dataRow
	)
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		data = append(data, dataRow{line: i + 1, cells: row})
	}
	if header == nil || len(data) == 0 {
		return nil, nil, ErrEmptyFile
	}
	return header, data, nil
}

func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

// sniffDelimiter picks ';' when the header line uses it more than ','.
// Spreadsheets saved with a comma decimal separator export that way.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
