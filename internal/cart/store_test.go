package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Add(Line{ProductID: 1, ProductName: "keyboard", UnitPrice: 10, QuantitySelected: 2})
	s.Add(Line{ProductID: 2, ProductName: "mouse", UnitPrice: 5, QuantitySelected: 1})

	lines := s.Lines()
	require.Len(t, lines, 2)
	require.Equal(t, uint(1), lines[0].ProductID)
	require.Equal(t, uint(2), lines[1].ProductID)
}

func TestAddSameProductTwiceYieldsTwoLines(t *testing.T) {
	s := NewStore()
	s.Add(Line{ProductID: 7, UnitPrice: 3, QuantitySelected: 1})
	s.Add(Line{ProductID: 7, UnitPrice: 3, QuantitySelected: 4})

	lines := s.Lines()
	require.Len(t, lines, 2)
	require.Equal(t, uint(1), lines[0].QuantitySelected)
	require.Equal(t, uint(4), lines[1].QuantitySelected)
}

func TestAddClampsQuantityToOne(t *testing.T) {
	s := NewStore()
	s.Add(Line{ProductID: 1, QuantitySelected: 0})
	require.Equal(t, uint(1), s.Lines()[0].QuantitySelected)
}

func TestRemoveDropsAllMatchingLines(t *testing.T) {
	s := NewStore()
	s.Add(Line{ProductID: 1, QuantitySelected: 1})
	s.Add(Line{ProductID: 2, QuantitySelected: 1})
	s.Add(Line{ProductID: 1, QuantitySelected: 3})

	s.Remove(1)

	lines := s.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, uint(2), lines[0].ProductID)
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	s := NewStore()
	s.Add(Line{ProductID: 1, QuantitySelected: 1})
	s.Add(Line{ProductID: 2, QuantitySelected: 1})

	s.Remove(99)

	require.Equal(t, 2, s.Len())
}

func TestClearEmptiesStore(t *testing.T) {
	s := NewStore()
	s.Add(Line{ProductID: 1, QuantitySelected: 1})
	s.Add(Line{ProductID: 2, QuantitySelected: 1})

	s.Clear()

	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Lines())
}

func TestLinesReturnsACopy(t *testing.T) {
	s := NewStore()
	s.Add(Line{ProductID: 1, QuantitySelected: 1})

	lines := s.Lines()
	lines[0].ProductID = 42

	require.Equal(t, uint(1), s.Lines()[0].ProductID)
}

func TestRegistryHandsOutOneStorePerUser(t *testing.T) {
	r := NewRegistry()
	a := r.Get(1)
	b := r.Get(2)
	require.NotSame(t, a, b)
	require.Same(t, a, r.Get(1))

	a.Add(Line{ProductID: 1, QuantitySelected: 1})
	r.Drop(1)
	require.Equal(t, 0, r.Get(1).Len())
}
