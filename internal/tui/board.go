package tui

import (
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tusavi/internal/layout"
)

const (
	headerLines = 2
	boardRowGap = 1
	chipGap     = 1
	capGap      = 1
	chipPadding = 1
	minPoolWrap = 20
)

// rect is a one-line hit area in screen cells.
type rect struct {
	x, y, w int
}

func (r rect) contains(x, y int) bool {
	return y == r.y && x >= r.x && x < r.x+r.w
}

func (r rect) center() int {
	return r.x + r.w/2
}

type slotBox struct {
	rect
	slot  layout.Slot
	label string
}

type chipBox struct {
	rect
	label string
	index int
}

// geometry places every slot and pool chip on screen. Rendering and mouse hit
// testing share it so they cannot drift apart.
type geometry struct {
	originX    int
	boardWidth int
	slots      []slotBox
	rows       [][]int
	captionY   int
	chips      []chipBox
	chipLines  [][]int
	statusY    int
}

func capWidth(label string) int {
	return max(layout.CapWidth(label), runewidth.StringWidth(layout.Display(label))+2)
}

func chipWidth(label string) int {
	return runewidth.StringWidth(layout.Display(label)) + 2*chipPadding
}

func buildGeometry(l *layout.Layout, pool []string, width int) geometry {
	g := geometry{}
	for _, row := range l.Rows {
		rowWidth := 0
		for i, label := range row {
			if i > 0 {
				rowWidth += capGap
			}
			rowWidth += capWidth(label)
		}
		g.boardWidth = max(g.boardWidth, rowWidth)
	}
	if width > g.boardWidth {
		g.originX = (width - g.boardWidth) / 2
	}

	y := headerLines
	for r, row := range l.Rows {
		x := g.originX
		indexes := make([]int, 0, len(row))
		for c, label := range row {
			w := capWidth(label)
			indexes = append(indexes, len(g.slots))
			g.slots = append(g.slots, slotBox{
				rect:  rect{x: x, y: y, w: w},
				slot:  layout.Slot{Row: r, Col: c},
				label: label,
			})
			x += w + capGap
		}
		g.rows = append(g.rows, indexes)
		y += 1 + boardRowGap
	}

	g.captionY = y
	y++
	wrap := max(g.boardWidth, minPoolWrap)
	x := g.originX
	var line []int
	for i, label := range pool {
		w := chipWidth(label)
		if len(line) > 0 && x-g.originX+w > wrap {
			g.chipLines = append(g.chipLines, line)
			line = nil
			x = g.originX
			y++
		}
		line = append(line, len(g.chips))
		g.chips = append(g.chips, chipBox{rect: rect{x: x, y: y, w: w}, label: label, index: i})
		x += w + chipGap
	}
	if len(line) > 0 {
		g.chipLines = append(g.chipLines, line)
		y++
	}
	g.statusY = y + 1
	return g
}

func (g geometry) slotAt(x, y int) (slotBox, bool) {
	for _, box := range g.slots {
		if box.contains(x, y) {
			return box, true
		}
	}
	return slotBox{}, false
}

func (g geometry) chipAt(x, y int) (chipBox, bool) {
	for _, box := range g.chips {
		if box.contains(x, y) {
			return box, true
		}
	}
	return chipBox{}, false
}

func (g geometry) slotIndex(s layout.Slot) int {
	for i, box := range g.slots {
		if box.slot == s {
			return i
		}
	}
	return -1
}

// moveSlot steps the keyboard target cursor. Horizontal moves stay inside the
// row; vertical moves pick the cap closest to the current column.
func (g geometry) moveSlot(cur layout.Slot, dx, dy int) layout.Slot {
	idx := g.slotIndex(cur)
	if idx < 0 {
		if len(g.slots) == 0 {
			return cur
		}
		return g.slots[0].slot
	}
	rects := make([][]rect, len(g.rows))
	for r, row := range g.rows {
		for _, i := range row {
			rects[r] = append(rects[r], g.slots[i].rect)
		}
	}
	r, c := moveInGrid(rects, cur.Row, cur.Col, dx, dy)
	return g.slots[g.rows[r][c]].slot
}

// moveChip steps the pool cursor the same way across wrapped chip lines.
func (g geometry) moveChip(index, dx, dy int) int {
	if len(g.chips) == 0 {
		return 0
	}
	index = max(0, min(index, len(g.chips)-1))
	line, col := 0, 0
	rects := make([][]rect, len(g.chipLines))
	for l, chips := range g.chipLines {
		for c, i := range chips {
			rects[l] = append(rects[l], g.chips[i].rect)
			if i == index {
				line, col = l, c
			}
		}
	}
	l, c := moveInGrid(rects, line, col, dx, dy)
	return g.chips[g.chipLines[l][c]].index
}

func moveInGrid(rows [][]rect, r, c, dx, dy int) (int, int) {
	if dy != 0 {
		center := rows[r][c].center()
		r = max(0, min(r+dy, len(rows)-1))
		return r, nearest(rows[r], center)
	}
	c = max(0, min(c+dx, len(rows[r])-1))
	return r, c
}

func nearest(row []rect, x int) int {
	best, bestDist := 0, -1
	for i, box := range row {
		dist := box.center() - x
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}
