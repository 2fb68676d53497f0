package combat

import (
	"github.com/Aunggrid/wildmarch/internal/config"
	"github.com/Aunggrid/wildmarch/internal/grid"
)

// Zone is the circular tile region inside which actors participate in
// combat. It grows when the player pushes toward its edge; the radius is
// monotonically non-decreasing within one encounter and always within
// [initial, max].
type Zone struct {
	Center grid.Coord
	Radius int

	InitialRadius int
	MaxRadius     int
	EdgeThreshold int
	ExpandBy      int
	MaxExpansions int
	Cooldown      float64

	// Expansions counts edge-triggered growths, read as the player's
	// escape attempts.
	Expansions   int
	cooldownLeft float64
}

// NewZone creates a zone from configuration. Reset must be called when
// combat starts.
func NewZone(cfg config.ZoneConfig) *Zone {
	return &Zone{
		Radius:        cfg.InitialRadius,
		InitialRadius: cfg.InitialRadius,
		MaxRadius:     cfg.MaxRadius,
		EdgeThreshold: cfg.EdgeThreshold,
		ExpandBy:      cfg.ExpandBy,
		MaxExpansions: cfg.MaxExpansions,
		Cooldown:      cfg.CooldownSecs,
	}
}

// Reset recenters the zone and restores the initial radius, clearing
// expansion state for a new encounter.
func (z *Zone) Reset(center grid.Coord) {
	z.Center = center
	z.Radius = z.InitialRadius
	z.Expansions = 0
	z.cooldownLeft = 0
}

// Contains reports whether the tile is inside the zone.
func (z *Zone) Contains(c grid.Coord) bool {
	return grid.Chebyshev(z.Center, c) <= z.Radius
}

// Distance returns the tile distance from the zone center.
func (z *Zone) Distance(c grid.Coord) int {
	return grid.Chebyshev(z.Center, c)
}

// NearEdge reports whether the tile is within the edge threshold of the
// zone boundary.
func (z *Zone) NearEdge(c grid.Coord) bool {
	return z.Radius-z.Distance(c) <= z.EdgeThreshold
}

// Tick advances the expansion cooldown.
func (z *Zone) Tick(deltaTime float64) {
	if z.cooldownLeft > 0 {
		z.cooldownLeft -= deltaTime
		if z.cooldownLeft < 0 {
			z.cooldownLeft = 0
		}
	}
}

// TryExpand grows the zone by the configured increment when the given
// position presses against the edge and the cooldown has elapsed. After
// MaxExpansions the radius is locked regardless of proximity. Returns
// true when an expansion happened.
func (z *Zone) TryExpand(pos grid.Coord) bool {
	if z.Expansions >= z.MaxExpansions {
		return false
	}
	if z.cooldownLeft > 0 {
		return false
	}
	if !z.NearEdge(pos) {
		return false
	}

	z.Radius += z.ExpandBy
	if z.Radius > z.MaxRadius {
		z.Radius = z.MaxRadius
	}
	z.Expansions++
	z.cooldownLeft = z.Cooldown
	return true
}
