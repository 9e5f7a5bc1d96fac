package reservation

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRestaurant(t *testing.T) {
	r, err := newRestaurant("id-A", "A", 3)
	require.NoError(t, err)

	assert.Equal(t, "A", r.Name())
	assert.Equal(t, 3, r.TableCount())
	for i, tbl := range r.tables {
		assert.Equal(t, i+1, tbl.Number())
	}
}

func TestNewRestaurantZeroTables(t *testing.T) {
	r, err := newRestaurant("id-Empty", "Empty", 0)
	require.NoError(t, err)

	assert.Equal(t, 0, r.TableCount())
	assert.Empty(t, slices.Collect(r.FindAllFreeTables(christmas)))
	assert.Equal(t, 0, r.CountAvailableTables(christmas))
}

func TestNewRestaurantNegativeTables(t *testing.T) {
	_, err := newRestaurant("id-Broken", "Broken", -1)
	assert.Error(t, err)
}

func TestRestaurantFindAllFreeTables(t *testing.T) {
	r, err := newRestaurant("id-A", "A", 4)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"A - Table 1", "A - Table 2", "A - Table 3", "A - Table 4"},
		slices.Collect(r.FindAllFreeTables(christmas)))

	assert.True(t, r.bookTable(christmas, 2))

	assert.Equal(t,
		[]string{"A - Table 1", "A - Table 3", "A - Table 4"},
		slices.Collect(r.FindAllFreeTables(christmas)))
	assert.Len(t, slices.Collect(r.FindAllFreeTables(christmas.AddDate(0, 0, 1))), 4)
	assert.Equal(t, 3, r.CountAvailableTables(christmas))
}

func TestRestaurantFindAllFreeTablesIsRecomputed(t *testing.T) {
	r, err := newRestaurant("id-A", "A", 2)
	require.NoError(t, err)

	free := r.FindAllFreeTables(christmas)
	assert.Len(t, slices.Collect(free), 2)

	r.bookTable(christmas, 1)
	assert.Equal(t, []string{"A - Table 2"}, slices.Collect(free))
}

func TestRestaurantBookTableOutOfRangePanics(t *testing.T) {
	r, err := newRestaurant("id-A", "A", 2)
	require.NoError(t, err)

	assert.Panics(t, func() { r.bookTable(christmas, 0) })
	assert.Panics(t, func() { r.bookTable(christmas, 3) })
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Chez Nous - Table 12", Label("Chez Nous", 12))
}
