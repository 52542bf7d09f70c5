// Package search implements the substring search over a loaded dataset.
package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"operadoras/internal/dataset"
)

// MaxResults caps the number of records returned by a search.
const MaxResults = 20

// Searchable column names.
const (
	FieldRazaoSocial  = "Razao_Social"
	FieldNomeFantasia = "Nome_Fantasia"
	FieldCNPJ         = "CNPJ"
	FieldCidade       = "Cidade"
	FieldUF           = "UF"
)

type field struct {
	name string
	fold bool
}

// CNPJ is compared verbatim: it holds digits and must keep leading zeros.
var fields = []field{
	{FieldRazaoSocial, true},
	{FieldNomeFantasia, true},
	{FieldCNPJ, false},
	{FieldCidade, true},
	{FieldUF, true},
}

// Result is the outcome of a search. Count is the number of matching rows
// in the whole table; Matches holds at most the limit, in table order.
type Result struct {
	Matches []dataset.Record
	Count   int
}

// Search runs a search capped at MaxResults.
func Search(t *dataset.Table, query string) Result {
	return SearchLimit(t, query, MaxResults)
}

// SearchLimit matches query, trimmed and lowercased, as a substring of any
// searchable field. An empty query matches nothing. Accents are not folded.
func SearchLimit(t *dataset.Table, query string, limit int) Result {
	res := Result{Matches: []dataset.Record{}}

	// cases.Caser keeps state and must not be shared across goroutines.
	lower := cases.Lower(language.Und)
	q := lower.String(strings.TrimSpace(query))
	if q == "" || t.Empty() {
		return res
	}

	for i := 0; i < t.Len(); i++ {
		if !matches(t, i, q, lower) {
			continue
		}
		res.Count++
		if len(res.Matches) < limit {
			res.Matches = append(res.Matches, t.Record(i))
		}
	}
	return res
}

func matches(t *dataset.Table, row int, q string, lower cases.Caser) bool {
	for _, f := range fields {
		v, ok := t.Value(row, f.name)
		if !ok || v == "" {
			continue
		}
		if f.fold {
			v = lower.String(v)
		}
		if strings.Contains(v, q) {
			return true
		}
	}
	return false
}
