package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

var (
	ErrEmptyFile       = errors.New("dataset: empty file")
	ErrNoHeader        = errors.New("dataset: missing header row")
	ErrInvalidEncoding = errors.New("dataset: invalid byte sequence for encoding")
	ErrMisdecoded      = errors.New("dataset: text looks misdecoded")
	ErrNoEncoding      = errors.New("dataset: no candidate encoding could read the file")
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Method names the parser that produced a table.
type Method string

const (
	MethodParser Method = "parser"
	MethodManual Method = "manual"
)

// Report describes how a file was loaded.
type Report struct {
	Encoding string
	Method   Method
	Rows     int
	Skipped  int
	// Rejected holds one entry per failed attempt, in the order tried.
	Rejected []string
}

// DetectAndDecode tries every candidate encoding in order and returns the
// first table that parses and passes the mojibake check. If no candidate
// parses with the CSV reader, the manual splitter is tried for each
// candidate. The returned table is never nil; on error it is empty.
func DetectAndDecode(raw []byte) (*Table, Report, error) {
	var rep Report
	if len(bytes.TrimSpace(bytes.TrimPrefix(raw, utf8BOM))) == 0 {
		return NewTable(nil, nil), rep, ErrEmptyFile
	}

	var errs []error
	reject := func(phase Method, enc Encoding, err error) {
		err = fmt.Errorf("%s/%s: %w", phase, enc.Name, err)
		errs = append(errs, err)
		rep.Rejected = append(rep.Rejected, err.Error())
	}

	for _, enc := range Candidates {
		r, err := enc.NewReader(raw)
		if err != nil {
			reject(MethodParser, enc, err)
			continue
		}
		p, err := parseDelimited(r)
		if err != nil {
			reject(MethodParser, enc, err)
			continue
		}
		if LooksMisdecoded(p.sample()) {
			reject(MethodParser, enc, ErrMisdecoded)
			continue
		}
		return accept(p, enc, MethodParser, rep)
	}

	for _, enc := range Candidates {
		text, err := enc.Decode(raw)
		if err != nil {
			reject(MethodManual, enc, err)
			continue
		}
		if LooksMisdecoded(text) {
			reject(MethodManual, enc, ErrMisdecoded)
			continue
		}
		p, err := splitManual(text)
		if err != nil {
			reject(MethodManual, enc, err)
			continue
		}
		return accept(p, enc, MethodManual, rep)
	}

	return NewTable(nil, nil), rep, fmt.Errorf("%w: %w", ErrNoEncoding, errors.Join(errs...))
}

func accept(p parsed, enc Encoding, m Method, rep Report) (*Table, Report, error) {
	rep.Encoding = enc.Name
	rep.Method = m
	rep.Rows = len(p.rows)
	rep.Skipped = p.skipped
	return NewTable(p.header, p.rows), rep, nil
}

// LoadFile reads path and decodes it with DetectAndDecode.
func LoadFile(path string) (*Table, Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return NewTable(nil, nil), Report{}, fmt.Errorf("read %s: %w", path, err)
	}
	return DetectAndDecode(raw)
}

// Load never fails: problems are logged and yield an empty table, which
// callers must treat as "no data".
func Load(path string) *Table {
	t, rep, err := LoadFile(path)
	for _, r := range rep.Rejected {
		slog.Debug("dataset candidate rejected", "path", path, "reason", r)
	}
	switch {
	case errors.Is(err, ErrEmptyFile):
		slog.Warn("dataset file is empty", "path", path)
		return t
	case err != nil:
		slog.Error("failed to load dataset", "path", path, "error", err)
		return t
	}

	if rep.Skipped > 0 {
		slog.Warn("skipped malformed rows", "path", path, "skipped", rep.Skipped)
	}
	if t.Empty() {
		slog.Warn("dataset has no rows", "path", path, "columns", t.Columns())
		return t
	}
	slog.Info("dataset loaded",
		"path", path,
		"encoding", rep.Encoding,
		"method", string(rep.Method),
		"rows", rep.Rows,
		"columns", len(t.Columns()),
	)
	return t
}
