// Package csvparse turns keyword-metric exports of unknown encoding, delimiter and
// column naming into keyword records. Malformed rows are dropped, never reported.
package csvparse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"seo-content-go/pkg/keyword"
	"seo-content-go/pkg/logger"
)

// ErrFileNotFound is returned by ParseFile when the export does not exist.
var ErrFileNotFound = errors.New("csv file not found")

// Report describes how an export was read.
type Report struct {
	Encoding  string `json:"encoding"`
	Delimiter string `json:"delimiter"`
	Rows      int    `json:"rows"`
	Parsed    int    `json:"parsed"`
	Skipped   int    `json:"skipped"`
}

// Parser reads keyword exports.
type Parser struct {
	log *logger.Logger
}

// NewParser creates a parser logging through the global logger.
func NewParser() *Parser {
	return &Parser{log: logger.GetLogger().Component("csv_parser")}
}

// ParseFile reads and parses the export at path. Only a missing or unreadable file is an
// error; content problems shrink the result instead.
func (p *Parser) ParseFile(path string) ([]keyword.Record, Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Report{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, Report{}, fmt.Errorf("failed to read csv %s: %w", path, err)
	}
	records, report := p.Parse(raw)
	return records, report, nil
}

// Parse decodes, repairs and parses raw export bytes. It never fails; the returned
// slice is empty when nothing usable was found.
func (p *Parser) Parse(raw []byte) ([]keyword.Record, Report) {
	text, encodingName := decode(raw)
	report := Report{Encoding: encodingName}

	lines := repairLines(text)
	headerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		p.log.Debug("CSV input is empty")
		return []keyword.Record{}, report
	}

	delim := sniffDelimiter(lines[headerIdx])
	report.Delimiter = string(delim)

	headerCells, err := splitRecord(lines[headerIdx], delim)
	if err != nil {
		p.log.WithError(err).Warn("CSV header could not be split")
		return []keyword.Record{}, report
	}
	headers := make([]string, len(headerCells))
	for i, h := range headerCells {
		headers[i] = normalizeHeader(h)
	}

	records := make([]keyword.Record, 0, len(lines)-headerIdx-1)
	for _, line := range lines[headerIdx+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		report.Rows++

		record, ok := buildRecord(line, delim, headers)
		if !ok {
			report.Skipped++
			continue
		}
		records = append(records, record)
	}
	report.Parsed = len(records)

	p.log.WithFields(map[string]interface{}{
		"encoding":  report.Encoding,
		"delimiter": report.Delimiter,
		"rows":      report.Rows,
		"parsed":    report.Parsed,
		"skipped":   report.Skipped,
	}).Info("Parsed keyword export")

	return records, report
}

// buildRecord turns one logical line into a record. Any failure, including a panic,
// skips the row.
func buildRecord(line string, delim rune, headers []string) (record keyword.Record, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			record, ok = keyword.Record{}, false
		}
	}()

	cells, err := splitRecord(line, delim)
	if err != nil {
		return keyword.Record{}, false
	}

	row := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" || i >= len(cells) {
			continue
		}
		if row[h] == "" {
			row[h] = strings.TrimSpace(cells[i])
		}
	}

	for _, f := range fields {
		if v, found := f.resolve(row); found {
			f.assign(&record, v)
		}
	}
	record.Keyword = strings.TrimSpace(record.Keyword)
	if record.Keyword == "" {
		return keyword.Record{}, false
	}
	return record, true
}

func splitRecord(line string, delim rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.Read()
}

// Parse parses raw export bytes with a default parser.
func Parse(raw []byte) []keyword.Record {
	records, _ := NewParser().Parse(raw)
	return records
}

// ParseFile parses the export at path with a default parser.
func ParseFile(path string) ([]keyword.Record, error) {
	records, _, err := NewParser().ParseFile(path)
	return records, err
}
