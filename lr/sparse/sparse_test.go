package sparse

import "testing"

func TestSetThenValue(t *testing.T) {
	m := NewIntMatrix(5, 5, DefaultNullValue)
	m.Set(2, 3, 4711)
	if got := m.Value(2, 3); got != 4711 {
		t.Fatalf("Value(2,3) = %d, want 4711", got)
	}
	if m.Value(0, 0) != DefaultNullValue {
		t.Fatalf("unset cell should read NullValue")
	}
}

func TestConflictReportsOccupiedCell(t *testing.T) {
	m := NewIntMatrix(3, 3, DefaultNullValue)
	if m.Conflict(1, 1) {
		t.Fatalf("empty cell should not conflict")
	}
	m.Set(1, 1, 42)
	if !m.Conflict(1, 1) {
		t.Fatalf("occupied cell should conflict")
	}
}

func TestAddAppendsSecondValue(t *testing.T) {
	m := NewIntMatrix(3, 3, DefaultNullValue)
	m.Add(0, 0, 1)
	m.Add(0, 0, 2)
	a, b := m.Values(0, 0)
	if a != 1 || b != 2 {
		t.Fatalf("Values(0,0) = (%d,%d), want (1,2)", a, b)
	}
}

func TestSetOverwritesDiscardingSecondValue(t *testing.T) {
	m := NewIntMatrix(3, 3, DefaultNullValue)
	m.Add(0, 0, 1)
	m.Add(0, 0, 2)
	m.Set(0, 0, 9)
	a, b := m.Values(0, 0)
	if a != 9 || b != DefaultNullValue {
		t.Fatalf("Values(0,0) after Set = (%d,%d), want (9, NullValue)", a, b)
	}
}

func TestMultipleCellsDoNotInterfere(t *testing.T) {
	m := NewIntMatrix(4, 4, DefaultNullValue)
	m.Set(0, 1, 10)
	m.Set(3, 0, 30)
	m.Set(1, 2, 12)
	if m.Value(0, 1) != 10 || m.Value(3, 0) != 30 || m.Value(1, 2) != 12 {
		t.Fatalf("cells interfered with one another")
	}
	if m.ValueCount() != 3 {
		t.Fatalf("ValueCount() = %d, want 3", m.ValueCount())
	}
}
