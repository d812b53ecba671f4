// Package fills reads broker execution logs (one fill per line) into typed
// Fill records.
package fills

import (
	"errors"
	"strings"
)

var (
	ErrEmptyFile     = errors.New("file appears to be empty or invalid")
	ErrUnknownFormat = errors.New("could not detect file format (expected CSV or TSV)")
)

// Row maps a header name to the raw value found in that column.
type Row map[string]string

// Log is a parsed execution log. Rows are in file order.
type Log struct {
	Delimiter string
	Headers   []string
	Rows      []Row
}

// DetectDelimiter picks the column separator from the header line: tab wins
// over comma, anything else is an unknown format.
func DetectDelimiter(header string) (string, error) {
	switch {
	case strings.Contains(header, "\t"):
		return "\t", nil
	case strings.Contains(header, ","):
		return ",", nil
	}
	return "", ErrUnknownFormat
}

// Parse splits raw log text into a header and rows. It only fails when
// there is no header plus data line, or the delimiter cannot be detected.
// Short rows are padded with empty strings and extra columns are dropped.
func Parse(raw string) (*Log, error) {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		return nil, ErrEmptyFile
	}

	delim, err := DetectDelimiter(lines[0])
	if err != nil {
		return nil, err
	}

	headers := strings.Split(lines[0], delim)
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	log := &Log{
		Delimiter: delim,
		Headers:   headers,
		Rows:      make([]Row, 0, len(lines)-1),
	}
	for _, line := range lines[1:] {
		values := strings.Split(line, delim)
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = strings.TrimSpace(values[i])
			} else {
				row[h] = ""
			}
		}
		log.Rows = append(log.Rows, row)
	}
	return log, nil
}

// Fills converts every row into a Fill, in file order.
func (l *Log) Fills() []Fill {
	out := make([]Fill, 0, len(l.Rows))
	for _, r := range l.Rows {
		out = append(out, FromRow(r))
	}
	return out
}

// ParseFills is Parse followed by Fills.
func ParseFills(raw string) ([]Fill, error) {
	log, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return log.Fills(), nil
}
