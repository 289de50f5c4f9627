// Package aggregate implements the table shapes reports are built from:
// grouped sums, dense pivots, and stable top-N rankings. Everything works
// on typed record slices, never on loosely-typed row maps.
package aggregate

import "sort"

// Row is one key with its summed measure.
type Row struct {
	Key   string
	Value float64
}

// Table is a grouped one-measure table. Row order is the first-seen order
// of the keys in the source records unless a sort is applied.
type Table struct {
	KeyName     string
	MeasureName string
	Rows        []Row
}

// GroupSum groups items by key and sums measure. The sum over all rows
// equals the sum over the input; nothing is dropped or double counted.
func GroupSum[T any](items []T, keyName, measureName string, key func(T) string, measure func(T) float64) Table {
	idx := make(map[string]int)
	t := Table{KeyName: keyName, MeasureName: measureName}
	for _, it := range items {
		k := key(it)
		i, ok := idx[k]
		if !ok {
			i = len(t.Rows)
			idx[k] = i
			t.Rows = append(t.Rows, Row{Key: k})
		}
		t.Rows[i].Value += measure(it)
	}
	return t
}

// Total sums every row.
func (t Table) Total() float64 {
	var sum float64
	for _, r := range t.Rows {
		sum += r.Value
	}
	return sum
}

// SortDesc returns a copy sorted by value, descending. Ties keep their
// existing relative order, so repeated runs rank identically.
func (t Table) SortDesc() Table {
	out := Table{KeyName: t.KeyName, MeasureName: t.MeasureName, Rows: make([]Row, len(t.Rows))}
	copy(out.Rows, t.Rows)
	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i].Value > out.Rows[j].Value
	})
	return out
}

// TopN returns the n highest rows (stable ties). n larger than the table
// returns everything.
func (t Table) TopN(n int) Table {
	sorted := t.SortDesc()
	if n < len(sorted.Rows) {
		sorted.Rows = sorted.Rows[:n]
	}
	return sorted
}

// Keys returns the row keys in table order.
func (t Table) Keys() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Key
	}
	return out
}

// Values returns the row values in table order.
func (t Table) Values() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Value
	}
	return out
}

// PivotRow is one row key with a value per pivot column.
type PivotRow struct {
	Key    string
	Values []float64
}

// PivotTable is a dense two-dimensional sum: every row has a value for
// every column, zero when the combination never occurred in the source.
type PivotTable struct {
	RowName string
	ColName string
	Columns []string
	Rows    []PivotRow
}

// PivotSum groups items by (rowKey, colKey) and sums measure into a dense
// grid. Rows and columns appear in first-seen order.
func PivotSum[T any](items []T, rowName, colName string, rowKey, colKey func(T) string, measure func(T) float64) PivotTable {
	p := PivotTable{RowName: rowName, ColName: colName}
	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)

	for _, it := range items {
		ck := colKey(it)
		if _, ok := colIdx[ck]; !ok {
			colIdx[ck] = len(p.Columns)
			p.Columns = append(p.Columns, ck)
			for i := range p.Rows {
				p.Rows[i].Values = append(p.Rows[i].Values, 0)
			}
		}
		rk := rowKey(it)
		ri, ok := rowIdx[rk]
		if !ok {
			ri = len(p.Rows)
			rowIdx[rk] = ri
			p.Rows = append(p.Rows, PivotRow{Key: rk, Values: make([]float64, len(p.Columns))})
		}
		p.Rows[ri].Values[colIdx[ck]] += measure(it)
	}
	return p
}

// SortRowsByKey orders rows lexically by key; useful when row keys are
// YYYYMM periods.
func (p PivotTable) SortRowsByKey() PivotTable {
	out := p
	out.Rows = make([]PivotRow, len(p.Rows))
	copy(out.Rows, p.Rows)
	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i].Key < out.Rows[j].Key
	})
	return out
}

// Column returns the series for one column, or nil when absent.
func (p PivotTable) Column(name string) []float64 {
	for ci, c := range p.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(p.Rows))
		for ri, r := range p.Rows {
			out[ri] = r.Values[ci]
		}
		return out
	}
	return nil
}

// RowKeys returns the row keys in table order.
func (p PivotTable) RowKeys() []string {
	out := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		out[i] = r.Key
	}
	return out
}
