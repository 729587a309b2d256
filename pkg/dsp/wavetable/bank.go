// Package wavetable provides band-limited wavetable banks and the
// table-selection and fold-back lookup used to play them.
//
// A bank holds one half period per table. Tables are ordered from the
// richest (lowest notes) to the sparsest (highest notes) and each is paired
// with a note boundary: the highest note the table is valid for.
package wavetable

import (
	"errors"
	"fmt"
)

// Errors returned by NewBank.
var (
	ErrEmptyBank     = errors.New("wavetable: bank has no tables")
	ErrTableLength   = errors.New("wavetable: table length mismatch")
	ErrBoundaryCount = errors.New("wavetable: boundary count does not match table count")
	ErrBoundaryOrder = errors.New("wavetable: note boundaries are not monotonic")
)

// Table is a read-only half-period wavetable.
type Table struct {
	samples []float32
}

// Len returns the half-period length of the table.
func (t Table) Len() int {
	return len(t.samples)
}

// At returns sample i, clamping i to the table range.
func (t Table) At(i int) float32 {
	if i < 0 {
		i = 0
	} else if i >= len(t.samples) {
		i = len(t.samples) - 1
	}
	return t.samples[i]
}

// Bank is an immutable collection of equally sized wavetables paired
// with their note boundaries. It is safe for concurrent readers.
type Bank struct {
	tables     []Table
	boundaries []uint8
	length     int
}

// NewBank creates a bank from half-period tables and their upper note
// boundaries. The input is copied.
func NewBank(tables [][]float32, boundaries []uint8) (*Bank, error) {
	if len(tables) == 0 {
		return nil, ErrEmptyBank
	}
	if len(tables) != len(boundaries) {
		return nil, fmt.Errorf("%w: %d tables, %d boundaries", ErrBoundaryCount, len(tables), len(boundaries))
	}

	length := len(tables[0])
	if length == 0 {
		return nil, fmt.Errorf("%w: table 0 is empty", ErrTableLength)
	}

	b := &Bank{
		tables:     make([]Table, len(tables)),
		boundaries: make([]uint8, len(boundaries)),
		length:     length,
	}
	for i, src := range tables {
		if len(src) != length {
			return nil, fmt.Errorf("%w: table %d has %d samples, expected %d", ErrTableLength, i, len(src), length)
		}
		samples := make([]float32, length)
		copy(samples, src)
		b.tables[i] = Table{samples: samples}
	}
	for i := 1; i < len(boundaries); i++ {
		if boundaries[i] < boundaries[i-1] {
			return nil, fmt.Errorf("%w: boundary %d (%d) below boundary %d (%d)",
				ErrBoundaryOrder, i, boundaries[i], i-1, boundaries[i-1])
		}
	}
	copy(b.boundaries, boundaries)

	return b, nil
}

// Len returns the number of tables in the bank.
func (b *Bank) Len() int {
	return len(b.tables)
}

// TableLength returns the half-period length shared by every table.
func (b *Bank) TableLength() int {
	return b.length
}

// Table returns table i, clamped to the bank range.
func (b *Bank) Table(i int) Table {
	return b.tables[b.clamp(i)]
}

// Boundary returns the upper note boundary of table i, clamped to the
// bank range.
func (b *Bank) Boundary(i int) uint8 {
	return b.boundaries[b.clamp(i)]
}

// Boundaries returns a copy of the note boundary table.
func (b *Bank) Boundaries() []uint8 {
	out := make([]uint8, len(b.boundaries))
	copy(out, b.boundaries)
	return out
}

func (b *Bank) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(b.tables) {
		return len(b.tables) - 1
	}
	return i
}
