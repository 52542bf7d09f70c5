package search

import "operadoras/internal/dataset"

// Engine binds a loaded table to a result limit. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	table *dataset.Table
	limit int
}

// NewEngine returns an engine over t. A limit below one means MaxResults.
func NewEngine(t *dataset.Table, limit int) *Engine {
	if limit < 1 {
		limit = MaxResults
	}
	if t == nil {
		t = dataset.NewTable(nil, nil)
	}
	return &Engine{table: t, limit: limit}
}

func (e *Engine) Search(query string) Result {
	return SearchLimit(e.table, query, e.limit)
}

// Loaded reports whether the table holds at least one row.
func (e *Engine) Loaded() bool {
	return !e.table.Empty()
}

func (e *Engine) Columns() []string {
	return e.table.Columns()
}

func (e *Engine) RowCount() int {
	return e.table.Len()
}

func (e *Engine) Limit() int {
	return e.limit
}
