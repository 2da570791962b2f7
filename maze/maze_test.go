package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Fresh grid has walls, empty rooms and open gateways", func(t *testing.T) {
		g, err := New(3, 2)
		require.NoError(t, err)

		assert.Equal(t, 3, g.Width())
		assert.Equal(t, 2, g.Height())
		assert.Equal(t, 7, g.TotalWidth())
		assert.Equal(t, 5, g.TotalHeight())
		assert.Equal(t, 6, g.RoomCount())
		assert.Equal(t, 0, g.CarvedRooms())
		assert.Equal(t, 0, g.OpenedWalls())
		assert.False(t, g.Complete())

		assert.Equal(t, CellPosition{Row: 0, Col: 1}, g.Entrance())
		assert.Equal(t, CellPosition{Row: 4, Col: 5}, g.Exit())

		for row := 0; row < g.TotalHeight(); row++ {
			for col := 0; col < g.TotalWidth(); col++ {
				pos := CellPosition{Row: row, Col: col}
				switch {
				case pos == g.Entrance() || pos == g.Exit():
					assert.Equal(t, Carved, g.State(row, col), "gateway %v", pos)
				case row%2 == 1 && col%2 == 1:
					assert.True(t, g.IsRoom(row, col))
					assert.Equal(t, Empty, g.State(row, col), "room %v", pos)
				default:
					assert.False(t, g.IsRoom(row, col))
					assert.Equal(t, Wall, g.State(row, col), "lattice %v", pos)
				}
			}
		}
	})

	t.Run("Smallest maze renders as expected", func(t *testing.T) {
		g, err := New(2, 2)
		require.NoError(t, err)

		expected := "" +
			"# ###\n" +
			"#.#.#\n" +
			"#####\n" +
			"#.#.#\n" +
			"### #\n"
		assert.Equal(t, expected, g.String())
	})

	t.Run("Dimensions below two are rejected", func(t *testing.T) {
		for _, dims := range [][2]int{{1, 2}, {2, 1}, {3, 1}, {1, 1}, {0, 4}, {4, 0}, {-1, 3}, {3, -2}} {
			g, err := New(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimension, "dims %v", dims)
			assert.Nil(t, g)
		}
	})
}

func TestNewWithGateways(t *testing.T) {
	t.Run("Custom gateway columns", func(t *testing.T) {
		g, err := NewWithGateways(3, 3, 3, 1)
		require.NoError(t, err)

		assert.Equal(t, Carved, g.State(0, 3))
		assert.Equal(t, Carved, g.State(6, 1))
		assert.Equal(t, Wall, g.State(0, 1))
		assert.Equal(t, Wall, g.State(6, 5))
	})

	t.Run("Gateway columns must be odd and inside the border", func(t *testing.T) {
		for _, cols := range [][2]int{{0, 1}, {2, 1}, {1, 4}, {1, 7}, {-1, 1}} {
			_, err := NewWithGateways(3, 3, cols[0], cols[1])
			assert.ErrorIs(t, err, ErrInvalidGateway, "cols %v", cols)
		}
	})

	t.Run("Dimension check comes first", func(t *testing.T) {
		_, err := NewWithGateways(1, 3, 2, 2)
		assert.ErrorIs(t, err, ErrInvalidDimension)
	})
}

func TestGridBounds(t *testing.T) {
	g, err := New(2, 3)
	require.NoError(t, err)

	assert.True(t, g.InBound(0, 0))
	assert.True(t, g.InBound(6, 4))
	assert.False(t, g.InBound(-1, 0))
	assert.False(t, g.InBound(0, -1))
	assert.False(t, g.InBound(7, 0))
	assert.False(t, g.InBound(0, 5))
	assert.False(t, g.IsRoom(7, 1))
}

func TestGridCarve(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)

	assert.True(t, g.carve(CellPosition{Row: 1, Col: 1}))
	assert.False(t, g.carve(CellPosition{Row: 1, Col: 1}))
	assert.True(t, g.carve(CellPosition{Row: 1, Col: 2}))
	assert.True(t, g.carve(CellPosition{Row: 1, Col: 3}))

	assert.Equal(t, 2, g.CarvedRooms())
	assert.Equal(t, 1, g.OpenedWalls())
	assert.False(t, g.carve(g.Entrance()))
}

func TestSnapshotIsACopy(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)

	snapshot := g.Snapshot()
	snapshot[1][1] = Carved

	assert.Equal(t, Empty, g.State(1, 1))
	assert.Equal(t, byte(' '), Render(snapshot)[7])
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "wall", Wall.String())
	assert.Equal(t, "carved", Carved.String())
	assert.Equal(t, "Left", Left.String())
	assert.Equal(t, "reconnect", PhaseReconnect.String())
}
