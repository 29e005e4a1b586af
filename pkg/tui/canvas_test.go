package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstudio/inkstudio/pkg/models"
)

func layerAt(id string, x, y, w, h, opacity float64) models.Layer {
	return models.Layer{ID: id, Image: "img", X: x, Y: y, Width: w, Height: h, Opacity: opacity}
}

func TestCellPointRoundTrip(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {3, 7}, {39, 19}} {
		col, row := pointCell(cellPoint(c[0], c[1]))
		assert.Equal(t, c[0], col)
		assert.Equal(t, c[1], row)
	}
}

func TestRasterize(t *testing.T) {
	base := models.NewBaseLayer("base.png")

	t.Run("base only", func(t *testing.T) {
		grid := rasterize(models.Stack{base}, "", 10, 4)
		require.Len(t, grid, 4)
		for _, row := range grid {
			require.Len(t, row, 10)
			for _, c := range row {
				assert.Equal(t, runeBase, c.ch)
				assert.True(t, c.base)
				assert.Empty(t, c.layer)
			}
		}
	})

	t.Run("no size", func(t *testing.T) {
		assert.Empty(t, rasterize(models.Stack{base}, "", 0, 0))
	})

	tests := []struct {
		name      string
		stack     models.Stack
		col, row  int
		wantRune  rune
		wantLayer string
	}{
		{
			name:      "opaque layer",
			stack:     models.Stack{base, layerAt("a", 0, 0, 50, 50, 1)},
			col:       0,
			row:       0,
			wantRune:  '█',
			wantLayer: "a",
		},
		{
			name:     "outside the layer",
			stack:    models.Stack{base, layerAt("a", 0, 0, 50, 50, 1)},
			col:      8,
			row:      3,
			wantRune: runeBase,
		},
		{
			name:      "faint layer",
			stack:     models.Stack{base, layerAt("a", 0, 0, 50, 50, 0.3)},
			wantRune:  '▒',
			wantLayer: "a",
		},
		{
			name:     "transparent layer",
			stack:    models.Stack{base, layerAt("a", 0, 0, 50, 50, 0)},
			wantRune: runeBase,
		},
		{
			name:      "overlapping layers multiply",
			stack:     models.Stack{base, layerAt("a", 0, 0, 50, 50, 0.5), layerAt("b", 0, 0, 50, 50, 0.5)},
			wantRune:  '█',
			wantLayer: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := rasterize(tt.stack, "", 10, 4)
			c := grid[tt.row][tt.col]
			assert.Equal(t, string(tt.wantRune), string(c.ch))
			assert.Equal(t, tt.wantLayer, c.layer)
		})
	}
}

func TestRasterize_Handles(t *testing.T) {
	stack := models.Stack{models.NewBaseLayer("base.png"), layerAt("a", 20, 20, 50, 50, 1)}

	grid := rasterize(stack, "a", 20, 10)
	assert.Equal(t, string(runeResize), string(grid[7][14].ch))
	assert.True(t, grid[7][14].handle)
	assert.Equal(t, string(runeRotate), string(grid[1][9].ch))

	grid = rasterize(stack, "", 20, 10)
	assert.False(t, grid[7][14].handle)
}

func TestRenderCanvas(t *testing.T) {
	stack := models.Stack{models.NewBaseLayer("base.png"), layerAt("a", 0, 0, 50, 50, 1)}
	out := renderCanvas(rasterize(stack, "a", 10, 4), "a")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "·")
	assert.Len(t, strings.Split(out, "\n"), 4)
}
