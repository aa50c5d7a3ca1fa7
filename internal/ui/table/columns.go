package table

import (
	"maps"
	"slices"

	"knkadmin/internal/core/record"
	"knkadmin/internal/metadata"
	"knkadmin/internal/ui/cell"
	"knkadmin/internal/ui/locale"
)

// Column is one rendered table column.
type Column struct {
	Key       string             `json:"key"`
	Header    string             `json:"header"`
	Formatter metadata.Formatter `json:"-"`
}

// formatters merges config formatters with caller overrides; overrides win.
func formatters(cfg *metadata.EntityConfig, overrides map[string]metadata.Formatter) map[string]metadata.Formatter {
	out := map[string]metadata.Formatter{}
	if cfg != nil {
		maps.Copy(out, cfg.Formatters)
	}
	maps.Copy(out, overrides)
	return out
}

// InferColumns derives columns from the first row only: its keys in order, minus
// excluded keys, list values, and object values without a formatter.
// Rows with a different shape than the first are not supported.
func InferColumns(rows []record.Record, cfg *metadata.EntityConfig, opts Options) []Column {
	if len(rows) == 0 {
		return nil
	}
	fmts := formatters(cfg, opts.FormatterOverrides)

	var cols []Column
	rows[0].Each(func(key string, value any) bool {
		if slices.Contains(opts.ExcludeColumns, key) {
			return true
		}
		if cell.IsList(value) {
			return true
		}
		formatter := fmts[key]
		if cell.IsObject(value) && formatter == nil {
			return true
		}
		header, ok := opts.HeaderOverrides[key]
		if !ok {
			header = locale.Header(key)
		}
		cols = append(cols, Column{Key: key, Header: header, Formatter: formatter})
		return true
	})
	return cols
}
