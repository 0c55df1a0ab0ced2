// Package systems provides the per-agent rules applied by the simulation:
// spatial lookup, round resolution, the resource economy and steering.
package systems

// Neighbor holds a nearby item with precomputed spatial data.
type Neighbor struct {
	Index  int     // caller-assigned index, usually a position in the agent order
	DX, DY float64 // delta from query origin
	DistSq float64
}

type gridEntry struct {
	index int
	x, y  float64
}

// SpatialGrid provides neighbor lookups using a cell-based grid over a
// bounded rectangle. Points outside the rectangle land in the edge cells.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]gridEntry
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if !(cellSize > 0) {
		cellSize = max(width, height, 1)
	}
	cols := int(max(width, 0)/cellSize) + 1
	rows := int(max(height, 0)/cellSize) + 1

	cells := make([][]gridEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]gridEntry, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all items from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item to the grid at the given position.
func (g *SpatialGrid) Insert(index int, x, y float64) {
	col, row := g.cell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], gridEntry{index: index, x: x, y: y})
}

// QueryRadiusInto appends every item within radius (inclusive) of (x, y) to
// dst and returns the updated slice. Order follows cell layout, not index.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float64) []Neighbor {
	if radius < 0 {
		return dst
	}
	cellRadius := g.cols + g.rows
	if r := radius / g.cellSize; r < float64(cellRadius) {
		cellRadius = int(r) + 1
	}
	centerCol, centerRow := g.cell(x, y)
	radiusSq := radius * radius

	minCol, maxCol := max(centerCol-cellRadius, 0), min(centerCol+cellRadius, g.cols-1)
	minRow, maxRow := max(centerRow-cellRadius, 0), min(centerRow+cellRadius, g.rows-1)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				dx, dy := e.x-x, e.y-y
				distSq := dx*dx + dy*dy
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{Index: e.index, DX: dx, DY: dy, DistSq: distSq})
				}
			}
		}
	}
	return dst
}

// cell returns the clamped column and row for a world position.
func (g *SpatialGrid) cell(x, y float64) (col, row int) {
	col = int(x / g.cellSize)
	row = int(y / g.cellSize)
	if x != x || col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if y != y || row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}
