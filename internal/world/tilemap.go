package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/telemetry"
)

const (
	// Default map dimensions
	DefaultWidth  = 80
	DefaultHeight = 24

	// TileSize is the world-unit width of one tile, used when
	// converting tile coordinates to world positions.
	TileSize = 1.0

	// BSP parameters
	minRegionSize = 8
	maxRegionSize = 15
	minLeafSize   = 10
)

// TileMap is the game map: a rock field with clearings connected by
// trails. It implements grid.Map for the pathfinder and combat core.
type TileMap struct {
	Width   int
	Height  int
	Tiles   [][]Tile
	Regions []Region
	rng     *rand.Rand
}

// NewTileMap creates a map filled with rock. The rng drives generation
// so maps are reproducible per seed.
func NewTileMap(width, height int, rng *rand.Rand) *TileMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileRock
		}
	}

	return &TileMap{
		Width:   width,
		Height:  height,
		Tiles:   tiles,
		Regions: make([]Region, 0),
		rng:     rng,
	}
}

// Generate carves the map layout using a BSP split.
func (m *TileMap) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	root := &bspNode{
		x:      1,
		y:      1,
		width:  m.Width - 2,
		height: m.Height - 2,
	}

	m.splitNode(root)
	m.createRegions(root)
	m.connectRegions(root)
	m.scatterTerrain()

	span.SetAttributes(
		attribute.Int("world.width", m.Width),
		attribute.Int("world.height", m.Height),
		attribute.Int("world.region_count", len(m.Regions)),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// InBounds reports whether the tile exists on the map.
func (m *TileMap) InBounds(c grid.Coord) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

// Walkable reports whether the tile can be stood on.
func (m *TileMap) Walkable(c grid.Coord) bool {
	if !m.InBounds(c) {
		return false
	}
	return m.Tiles[c.Y][c.X].Walkable()
}

// MoveCost returns the movement-cost multiplier for entering the tile.
func (m *TileMap) MoveCost(c grid.Coord) float64 {
	if !m.InBounds(c) {
		return 1.0
	}
	return m.Tiles[c.Y][c.X].Cost()
}

// GetTile returns the tile at the given position.
func (m *TileMap) GetTile(c grid.Coord) Tile {
	if !m.InBounds(c) {
		return TileRock
	}
	return m.Tiles[c.Y][c.X]
}

// TileToWorld converts a tile coordinate to a world position at the
// tile's center.
func (m *TileMap) TileToWorld(c grid.Coord) (float64, float64) {
	return float64(c.X) * TileSize, float64(c.Y) * TileSize
}

// RegionIndexAt returns the index of the region containing the position,
// or -1 if not in a region.
func (m *TileMap) RegionIndexAt(c grid.Coord) int {
	for i, region := range m.Regions {
		if region.Contains(c.X, c.Y) {
			return i
		}
	}
	return -1
}

// RandomPointInRegion returns a random walkable point within the region.
func (m *TileMap) RandomPointInRegion(regionIndex int) grid.Coord {
	if regionIndex < 0 || regionIndex >= len(m.Regions) {
		return grid.Coord{X: -1, Y: -1}
	}
	region := m.Regions[regionIndex]

	for i := 0; i < 100; i++ {
		c := grid.Coord{
			X: region.X + m.rng.Intn(region.Width),
			Y: region.Y + m.rng.Intn(region.Height),
		}
		if m.Walkable(c) {
			return c
		}
	}

	cx, cy := region.Center()
	return grid.Coord{X: cx, Y: cy}
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	region        *Region
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (m *TileMap) splitNode(node *bspNode) {
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	if node.width > node.height && node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else if node.height >= minLeafSize*2 {
		splitHorizontally = true
	} else if node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else {
		return
	}

	var splitPos int
	if splitHorizontally {
		lo, hi := minLeafSize, node.height-minLeafSize
		if hi <= lo {
			return
		}
		splitPos = lo + m.rng.Intn(hi-lo+1)
	} else {
		lo, hi := minLeafSize, node.width-minLeafSize
		if hi <= lo {
			return
		}
		splitPos = lo + m.rng.Intn(hi-lo+1)
	}

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	m.splitNode(node.left)
	m.splitNode(node.right)
}

// createRegions carves a clearing inside each BSP leaf.
func (m *TileMap) createRegions(node *bspNode) {
	if node == nil {
		return
	}

	if !node.isLeaf() {
		m.createRegions(node.left)
		m.createRegions(node.right)
		return
	}

	w := minRegionSize + m.rng.Intn(min(maxRegionSize-minRegionSize+1, node.width-minRegionSize+1))
	h := minRegionSize + m.rng.Intn(min(maxRegionSize-minRegionSize+1, node.height-minRegionSize+1))
	if w > node.width-2 {
		w = node.width - 2
	}
	if h > node.height-2 {
		h = node.height - 2
	}
	if w < minRegionSize || h < minRegionSize {
		return
	}

	region := Region{
		X:      node.x + 1 + m.rng.Intn(node.width-w-1),
		Y:      node.y + 1 + m.rng.Intn(node.height-h-1),
		Width:  w,
		Height: h,
	}
	node.region = &region
	m.Regions = append(m.Regions, region)

	for y := region.Y; y < region.Y+region.Height; y++ {
		for x := region.X; x < region.X+region.Width; x++ {
			m.carve(x, y)
		}
	}
}

// connectRegions links each BSP sibling pair with a trail.
func (m *TileMap) connectRegions(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	m.connectRegions(node.left)
	m.connectRegions(node.right)

	leftRegion := m.anyRegion(node.left)
	rightRegion := m.anyRegion(node.right)
	if leftRegion == nil || rightRegion == nil {
		return
	}

	x1, y1 := leftRegion.Center()
	x2, y2 := rightRegion.Center()

	if m.rng.Intn(2) == 0 {
		m.carveHorizontal(x1, x2, y1)
		m.carveVertical(y1, y2, x2)
	} else {
		m.carveVertical(y1, y2, x1)
		m.carveHorizontal(x1, x2, y2)
	}
}

// anyRegion returns a region from a subtree.
func (m *TileMap) anyRegion(node *bspNode) *Region {
	if node == nil {
		return nil
	}
	if node.region != nil {
		return node.region
	}
	if region := m.anyRegion(node.left); region != nil {
		return region
	}
	return m.anyRegion(node.right)
}

// scatterTerrain replaces a share of grass with brush and water so
// movement costs vary across the map.
func (m *TileMap) scatterTerrain() {
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if m.Tiles[y][x] != TileGrass {
				continue
			}
			switch roll := m.rng.Intn(100); {
			case roll < 8:
				m.Tiles[y][x] = TileBrush
			case roll < 11:
				m.Tiles[y][x] = TileWater
			}
		}
	}
}

func (m *TileMap) carve(x, y int) {
	if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 {
		m.Tiles[y][x] = TileGrass
	}
}

func (m *TileMap) carveHorizontal(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		m.carve(x, y)
	}
}

func (m *TileMap) carveVertical(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		m.carve(x, y)
	}
}
