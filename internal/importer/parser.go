package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/moneymuse/internal/encoding"
	"github.com/MrJamesThe3rd/moneymuse/internal/transaction"
)

// Parser reads bank statement CSV exports and produces statement rows.
// It locates the header by matching column names, tolerates preamble and
// footer lines, and accepts either comma or semicolon separators.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Column names recognized in the header, lower-cased.
const (
	colDate   = "date"
	colDesc   = "description"
	colAmount = "amount"
)

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = detectSeparator(string(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(records)
	if !ok {
		return nil, fmt.Errorf("no header row with date, amount and description columns found")
	}

	return parseRows(cols, records[headerIdx+1:])
}

// detectSeparator picks semicolon when the content looks like a European
// export, comma otherwise.
func detectSeparator(content string) rune {
	firstLine, _, _ := strings.Cut(content, "\n")
	if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		return ';'
	}

	return ','
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func findHeader(records [][]string) (colIndex, int, bool) {
	for rowIdx, row := range records {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		_, hasDate := cols[colDate]
		_, hasAmount := cols[colAmount]
		_, hasDesc := cols[colDesc]

		if hasDate && hasAmount && hasDesc {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func parseRows(cols colIndex, records [][]string) ([]Row, error) {
	dateIdx := cols[colDate]
	descIdx := cols[colDesc]
	amountIdx := cols[colAmount]

	var rows []Row

	for _, record := range records {
		date, ok := parseDate(cellValue(record, dateIdx))
		if !ok {
			// Footer or blank line.
			continue
		}

		amount, err := parseAmount(cellValue(record, amountIdx))
		if err != nil || amount.IsZero() {
			continue
		}

		txType := transaction.TypeIncome
		if amount.IsNegative() {
			txType = transaction.TypeExpense
			amount = amount.Neg()
		}

		rows = append(rows, Row{
			Type:        txType,
			Amount:      amount,
			Description: cellValue(record, descIdx),
			Date:        date,
		})
	}

	return rows, nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

// parseAmount handles both "1,234.56" and European "1.234,56" formats.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	clean := s
	if lastComma := strings.LastIndex(s, ","); lastComma > strings.LastIndex(s, ".") {
		// Comma is the decimal separator; dots are thousands.
		clean = strings.ReplaceAll(s, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	} else {
		clean = strings.ReplaceAll(s, ",", "")
	}

	return decimal.NewFromString(clean)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
