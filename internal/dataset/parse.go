package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Delimiter separates fields in the source file.
const Delimiter = ';'

// sampleRows is how many parsed rows feed the mojibake check.
const sampleRows = 5

type parsed struct {
	header  []string
	rows    [][]string
	skipped int
}

// parseDelimited reads a header row followed by data rows, one record per
// physical line. Every line is parsed on its own, so a broken quote cannot
// spill into the rows after it: lines the CSV reader rejects and lines with
// more fields than the header are skipped and counted, shorter ones padded.
func parseDelimited(r io.Reader) (parsed, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return parsed{}, err
	}

	var out parsed
	for _, line := range splitLines(string(text)) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parseLine(line)
		if out.header == nil {
			if err != nil {
				return parsed{}, fmt.Errorf("%w: %v", ErrNoHeader, err)
			}
			out.header = rec
			continue
		}
		if err != nil || len(rec) > len(out.header) {
			out.skipped++
			continue
		}
		out.rows = append(out.rows, rec)
	}
	if out.header == nil {
		return parsed{}, ErrEmptyFile
	}
	return out, nil
}

// parseLine splits a single line. Bare quotes inside unquoted fields are
// tolerated; an unterminated or misplaced quoted field is an error.
func parseLine(line string) ([]string, error) {
	rec, err := readLine(line, false)
	if errors.Is(err, csv.ErrBareQuote) {
		return readLine(line, true)
	}
	return rec, err
}

func readLine(line string, lazy bool) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = lazy
	return reader.Read()
}

// splitManual is the fallback parser: plain line and delimiter splitting with
// no quoting rules. Blank lines are ignored, short rows are padded and extra
// fields are dropped.
func splitManual(text string) (parsed, error) {
	var out parsed
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, string(Delimiter))
		if out.header == nil {
			out.header = fields
			continue
		}
		if len(fields) > len(out.header) {
			fields = fields[:len(out.header)]
		}
		out.rows = append(out.rows, fields)
	}
	if out.header == nil {
		return parsed{}, ErrNoHeader
	}
	return out, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// sample renders the header and the first rows the way they would be
// printed, for the mojibake check.
func (p parsed) sample() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(p.header, " "))
	for i, r := range p.rows {
		if i == sampleRows {
			break
		}
		sb.WriteByte('\n')
		sb.WriteString(strings.Join(r, " "))
	}
	return sb.String()
}
