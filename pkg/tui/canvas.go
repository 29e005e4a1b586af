package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/inkstudio/inkstudio/pkg/editor"
	"github.com/inkstudio/inkstudio/pkg/geometry"
	"github.com/inkstudio/inkstudio/pkg/models"
	"github.com/inkstudio/inkstudio/pkg/render"
)

// Terminal cells are about twice as tall as they are wide. Canvas coordinates
// use half-cell units vertically so percentages keep their proportions.
const cellAspect = 2

// tuiHandles sizes the handles in canvas units (one column, half a row).
var tuiHandles = editor.HandleMetrics{Radius: 1.5, RotateOffset: 2}

const (
	runeBase   = '·'
	runeResize = '◢'
	runeRotate = '◯'
)

var shades = []rune{'░', '▒', '▓', '█'}

type cell struct {
	ch     rune
	layer  string // topmost non-base layer covering the cell
	base   bool
	handle bool
}

// canvasRect is the canvas in its own coordinates.
func canvasRect(cols, rows int) geometry.Rect {
	return geometry.Rect{Width: float64(cols), Height: float64(rows * cellAspect)}
}

// cellPoint returns the canvas point at the middle of a cell.
func cellPoint(col, row int) geometry.Point {
	return geometry.Point{X: float64(col) + 0.5, Y: (float64(row) + 0.5) * cellAspect}
}

// pointCell is the inverse of cellPoint.
func pointCell(p geometry.Point) (col, row int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y / cellAspect))
}

// rasterize samples the draw list at every cell center. Non-base layers blend
// like ink: coverage accumulates as 1-(1-a)(1-b).
func rasterize(stack models.Stack, selected string, cols, rows int) [][]cell {
	grid := make([][]cell, rows)
	if cols <= 0 || rows <= 0 {
		return grid
	}
	ops := render.DrawList(stack, canvasRect(cols, rows))

	for row := range grid {
		grid[row] = make([]cell, cols)
		for col := range grid[row] {
			p := cellPoint(col, row)
			c := cell{ch: ' '}
			coverage := 0.0
			for _, op := range ops {
				if !op.Contains(p) {
					continue
				}
				if op.Blend == render.BlendNormal {
					c.base = true
					continue
				}
				if op.Opacity <= 0 {
					continue
				}
				coverage = 1 - (1-coverage)*(1-op.Opacity)
				c.layer = op.LayerID
			}
			switch {
			case c.layer != "":
				c.ch = shade(coverage)
			case c.base:
				c.ch = runeBase
			}
			grid[row][col] = c
		}
	}

	if layer, ok := stack.Find(selected); ok && !layer.IsBase {
		resize, rotate := editor.HandlePositions(layer, canvasRect(cols, rows), tuiHandles)
		markHandle(grid, resize, runeResize)
		markHandle(grid, rotate, runeRotate)
	}
	return grid
}

func shade(coverage float64) rune {
	i := int(coverage * float64(len(shades)))
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}

func markHandle(grid [][]cell, p geometry.Point, r rune) {
	col, row := pointCell(p)
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return
	}
	grid[row][col].ch = r
	grid[row][col].handle = true
}

// renderCanvas styles runs of cells that share a layer.
func renderCanvas(grid [][]cell, selected string) string {
	lines := make([]string, len(grid))
	for i, row := range grid {
		var line strings.Builder
		var run strings.Builder
		var key string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			line.WriteString(cellStyle(key, selected).Render(run.String()))
			run.Reset()
		}
		for _, c := range row {
			k := cellKey(c)
			if k != key {
				flush()
				key = k
			}
			run.WriteRune(c.ch)
		}
		flush()
		lines[i] = line.String()
	}
	return strings.Join(lines, "\n")
}

func cellKey(c cell) string {
	switch {
	case c.handle:
		return "\x00handle"
	case c.layer != "":
		return c.layer
	case c.base:
		return "\x00base"
	}
	return ""
}

func cellStyle(key, selected string) lipgloss.Style {
	switch key {
	case "\x00handle":
		return HandleStyle
	case "\x00base", "":
		return BaseCellStyle
	}
	return GetLayerCellStyle(models.GetLayerColor(key), key == selected)
}
