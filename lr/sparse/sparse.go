/*
Package sparse implements a sparse integer matrix used to back the ACTION
and GOTO parser tables (LEFT and BACKTRACK are plain maps in package lr):
most (state, symbol) pairs never
receive an entry, so a dense matrix would waste memory on large grammars.

Every cell holds up to two int32 values. A second write to an already
occupied cell is exactly how an ACTION-table shift/reduce or reduce/reduce
conflict is detected: the caller checks whether a cell already held a value
before deciding whether to call it a conflict.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), kept
sorted by (row, col) for binary-search-free sequential lookup.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sparse

import "fmt"

// IntMatrix is a sparse matrix of paired int32 cells. Construct with
//
//     m := NewIntMatrix(10, 10, DefaultNullValue)
//     m.Set(2, 3, 4711)    // first entry at (2,3)
//     v := m.Value(2, 3)   // 4711
//     m.Add(2, 3, 1)       // second entry at (2,3) -- a conflict, if unexpected
//     a, b := m.Values(2, 3)
//
// Values cannot be deleted, but may be overwritten with the null value.
// Space for null-valued cells is not reclaimed.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    cell
}

// cell holds up to two values stored at one matrix position.
type cell struct {
	a, b int32
}

func (c cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.a, c.b)
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// NewIntMatrix creates an m x n matrix. nullValue marks an empty cell.
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{rowcnt: m, colcnt: n, nullval: nullValue}
}

// M returns the row count.
func (m *IntMatrix) M() int { return m.rowcnt }

// N returns the column count.
func (m *IntMatrix) N() int { return m.colcnt }

// NullValue returns this matrix's null value.
func (m *IntMatrix) NullValue() int32 { return m.nullval }

// ValueCount returns the number of occupied cells.
func (m *IntMatrix) ValueCount() int { return len(m.values) }

// Value returns the first value at (i,j), or NullValue if unset.
func (m *IntMatrix) Value(i, j int) int32 {
	a, _ := m.Values(i, j)
	return a
}

// Values returns both values stored at (i,j) (either may be NullValue).
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	for _, t := range m.values {
		if !t.storedLeftOf(i, j) {
			if t.storedAt(i, j) {
				return t.value.a, t.value.b
			}
			break
		}
	}
	return m.nullval, m.nullval
}

// Conflict reports whether (i,j) already holds a value distinct from
// NullValue -- i.e. whether a further Add would create a second entry.
func (m *IntMatrix) Conflict(i, j int) bool {
	a, _ := m.Values(i, j)
	return a != m.nullval
}

// Set overwrites the cell at (i,j) with a single value, discarding any
// second entry.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, false)
}

// Add appends a second value to the cell at (i,j) if the first is already
// occupied, else sets the first.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, true)
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) *IntMatrix {
	at := 0
	for k, t := range m.values {
		if !t.storedLeftOf(i, j) {
			if t.storedAt(i, j) {
				if doAdd {
					m.values[k].value = addValue(m.values[k].value, value, m.nullval)
				} else {
					m.values[k].value = cell{value, m.nullval}
				}
				return m
			}
			break
		}
		at++
	}
	tnew := triplet{row: i, col: j, value: cell{value, m.nullval}}
	m.values = append(m.values, tnew)
	copy(m.values[at+1:], m.values[at:])
	m.values[at] = tnew
	return m
}

func addValue(c cell, n int32, nullval int32) cell {
	if c.a == nullval {
		c.a = n
	} else if c.b == nullval {
		c.b = n
	} else {
		c.b = n // cell already has two entries; overwrite the second
	}
	return c
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || (t.row == i && t.col < j)
}

func (t *triplet) storedAt(i, j int) bool {
	return t.row == i && t.col == j
}
