package tablo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex(t *testing.T) {
	tab := newPeopleTable(t)

	ix, err := tab.BuildIndex("id")
	require.NoError(t, err)
	assert.Equal(t, "id", ix.Column())
	assert.Equal(t, 3, ix.Len())

	row, err := ix.Lookup(2)
	require.NoError(t, err)
	assert.Equal(t, Value("bob"), row["name"])

	_, err = ix.Lookup(99)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.True(t, ix.Has(1))
	assert.False(t, ix.Has("1"), "key equality is exact, int and string differ")
}

func TestBuildIndex_DuplicateKey(t *testing.T) {
	tab, err := NewFromString("k v")
	require.NoError(t, err)
	require.NoError(t, tab.AddRows([]any{1, "a"}, []any{1, "b"}))

	_, err = tab.BuildIndex("k")
	var dup *ErrDuplicateKey
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "k", dup.Column)
	assert.Equal(t, Value(1), dup.Value)
}

func TestBuildIndex_ColumnNotFound(t *testing.T) {
	tab := newPeopleTable(t)

	_, err := tab.BuildIndex("nope")
	var notFound *ErrColumnNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestBuildIndex_SharesRows(t *testing.T) {
	tab := newPeopleTable(t)

	ix, err := tab.BuildIndex("id")
	require.NoError(t, err)

	row, err := ix.Lookup(1)
	require.NoError(t, err)
	row["score"] = 100
	assert.Equal(t, Value(100), tab.Row(0)["score"])
}

func TestBuildInvertedIndex(t *testing.T) {
	tab, err := NewFromString("city pop")
	require.NoError(t, err)
	require.NoError(t, tab.AddRows(
		[]any{"berlin", 1},
		[]any{"paris", 2},
		[]any{"berlin", 3},
		[]any{"rome", 4},
	))

	ix, err := tab.BuildInvertedIndex("city")
	require.NoError(t, err)
	assert.Equal(t, "city", ix.Column())

	assert.Equal(t, []int{0, 2}, ix.Positions("berlin").Slice())
	assert.Equal(t, []int{1}, ix.Positions("paris").Slice())
	assert.True(t, ix.Positions("madrid").IsEmpty())

	set := ix.PositionsWhere(func(v Value) bool { return v != "berlin" })
	assert.Equal(t, []int{1, 3}, set.Slice())
}

func TestTable_PositionsAndFilterSet(t *testing.T) {
	tab := newPeopleTable(t)

	high := tab.Positions(func(r Row) bool { return r["score"].(int) >= 80 })
	assert.Equal(t, []int{0, 2}, high.Slice())

	notAda := tab.Positions(func(r Row) bool { return r["name"] != "ada" })
	high.And(notAda)

	view := tab.FilterSet(high)
	require.Equal(t, 1, view.Len())
	assert.Equal(t, Value("cleo"), view.Row(0)["name"])

	// FilterSet aliases rows like Filter
	view.Row(0)["score"] = 0
	assert.Equal(t, Value(0), tab.Row(2)["score"])

	// Positions past the end are ignored
	stale := tab.Positions(func(Row) bool { return true })
	stale.Add(100)
	assert.Equal(t, tab.Len(), tab.FilterSet(stale).Len())
}
