package grid

import (
	"fmt"

	"github.com/memmaker/isotactics/engine/util"
	"github.com/memmaker/isotactics/engine/voxel"
)

// Position is one cell of a layer. Its Point always equals the cell
// coordinates with Z = 0.
type Position[T any] struct {
	ID       string
	Point    voxel.Int3
	content  T
	occupied bool
}

func (p *Position[T]) Content() (T, bool) {
	return p.content, p.occupied
}

func (p *Position[T]) IsEmpty() bool {
	return !p.occupied
}

func (p *Position[T]) Set(content T) {
	p.content = content
	p.occupied = true
}

func (p *Position[T]) Clear() {
	var empty T
	p.content = empty
	p.occupied = false
}

// Layer is a rectangular grid of positions, addressed as rows[y][x].
type Layer[T any] struct {
	rows   [][]Position[T]
	width  int
	height int
}

// Build creates height rows of width positions and asks factory for the
// content of every cell, row by row.
func Build[T any](width, height int, idPrefix string, factory func(x, y int) (T, bool)) *Layer[T] {
	if width <= 0 || height <= 0 {
		return &Layer[T]{}
	}
	layer := &Layer[T]{
		rows:   make([][]Position[T], height),
		width:  width,
		height: height,
	}
	for y := 0; y < height; y++ {
		row := make([]Position[T], width)
		for x := 0; x < width; x++ {
			row[x] = Position[T]{
				ID:    fmt.Sprintf("%s.%d", idPrefix, y*width+x),
				Point: voxel.NewInt3(x, y, 0),
			}
			if factory == nil {
				continue
			}
			if content, ok := factory(x, y); ok {
				row[x].Set(content)
			}
		}
		layer.rows[y] = row
	}
	util.LogGridDebug(fmt.Sprintf("[Grid] built %s layer %dx%d", idPrefix, width, height))
	return layer
}

func (l *Layer[T]) Width() int {
	return l.width
}

func (l *Layer[T]) Height() int {
	return l.height
}

func (l *Layer[T]) IsEmpty() bool {
	return l.width == 0 || l.height == 0
}

func (l *Layer[T]) Contains(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}

func (l *Layer[T]) ContainsGrid(point voxel.Int3) bool {
	return l.Contains(int(point.X), int(point.Y))
}

// At returns the position at (x, y) or nil outside the layer.
func (l *Layer[T]) At(x, y int) *Position[T] {
	if !l.Contains(x, y) {
		return nil
	}
	return &l.rows[y][x]
}

func (l *Layer[T]) Content(x, y int) (T, bool) {
	position := l.At(x, y)
	if position == nil {
		var empty T
		return empty, false
	}
	return position.Content()
}

// Clamp pulls a coordinate into [0, width) x [0, height) and reports whether
// it was inside to begin with.
func (l *Layer[T]) Clamp(point voxel.Int3) (int, int, bool) {
	x, y := int(point.X), int(point.Y)
	inBounds := l.Contains(x, y)
	return util.ClampInt(x, 0, l.width-1), util.ClampInt(y, 0, l.height-1), inBounds
}

// Each visits every position row by row.
func (l *Layer[T]) Each(visit func(position *Position[T])) {
	for y := range l.rows {
		for x := range l.rows[y] {
			visit(&l.rows[y][x])
		}
	}
}

// Clone copies the layer. copyContent is applied to every occupied cell so
// that the copy does not share mutable content with the original.
func (l *Layer[T]) Clone(copyContent func(T) T) *Layer[T] {
	clone := &Layer[T]{
		rows:   make([][]Position[T], len(l.rows)),
		width:  l.width,
		height: l.height,
	}
	for y, row := range l.rows {
		clonedRow := make([]Position[T], len(row))
		copy(clonedRow, row)
		if copyContent != nil {
			for x := range clonedRow {
				if clonedRow[x].occupied {
					clonedRow[x].content = copyContent(clonedRow[x].content)
				}
			}
		}
		clone.rows[y] = clonedRow
	}
	return clone
}
