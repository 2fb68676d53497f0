package combat

import (
	"testing"

	"github.com/Aunggrid/wildmarch/internal/config"
	"github.com/Aunggrid/wildmarch/internal/grid"
)

func testZone() *Zone {
	z := NewZone(config.ZoneConfig{
		InitialRadius: 12,
		MaxRadius:     20,
		EdgeThreshold: 3,
		ExpandBy:      2,
		MaxExpansions: 3,
		CooldownSecs:  5,
		FleeBuffer:    4,
	})
	z.Reset(grid.Coord{X: 20, Y: 20})
	return z
}

func TestZoneContains(t *testing.T) {
	z := testZone()
	tests := []struct {
		pos  grid.Coord
		want bool
	}{
		{grid.Coord{X: 20, Y: 20}, true},
		{grid.Coord{X: 32, Y: 20}, true},  // exactly on the boundary
		{grid.Coord{X: 33, Y: 20}, false}, // one past
		{grid.Coord{X: 8, Y: 8}, true},    // diagonal boundary
		{grid.Coord{X: 7, Y: 20}, false},
	}
	for _, tt := range tests {
		if got := z.Contains(tt.pos); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestZoneExpandAtEdge(t *testing.T) {
	z := testZone()

	inside := grid.Coord{X: 25, Y: 20} // distance 5, nowhere near the edge
	if z.TryExpand(inside) {
		t.Fatal("expanded while far from the edge")
	}

	edge := grid.Coord{X: 30, Y: 20} // distance 10, within threshold of radius 12
	if !z.TryExpand(edge) {
		t.Fatal("expected expansion at the edge")
	}
	if z.Radius != 14 {
		t.Errorf("Radius = %d, want 14", z.Radius)
	}
	if z.Expansions != 1 {
		t.Errorf("Expansions = %d, want 1", z.Expansions)
	}
}

func TestZoneExpandCooldown(t *testing.T) {
	z := testZone()
	edge := grid.Coord{X: 30, Y: 20}

	z.TryExpand(edge)
	if z.TryExpand(grid.Coord{X: 32, Y: 20}) {
		t.Error("expanded again before the cooldown elapsed")
	}

	z.Tick(5.0)
	if !z.TryExpand(grid.Coord{X: 32, Y: 20}) {
		t.Error("expected expansion after the cooldown elapsed")
	}
	if z.Radius != 16 {
		t.Errorf("Radius = %d, want 16", z.Radius)
	}
}

func TestZoneExpansionLock(t *testing.T) {
	z := testZone()

	for i := 0; i < 3; i++ {
		pos := grid.Coord{X: 20 + z.Radius - 1, Y: 20}
		if !z.TryExpand(pos) {
			t.Fatalf("expansion %d refused", i+1)
		}
		z.Tick(5.0)
	}
	if z.Radius != 18 {
		t.Errorf("Radius = %d, want 18 after three expansions", z.Radius)
	}

	if z.TryExpand(grid.Coord{X: 20 + z.Radius, Y: 20}) {
		t.Error("expanded past MaxExpansions")
	}
	if z.Radius != 18 {
		t.Errorf("Radius = %d, want locked at 18", z.Radius)
	}
}

func TestZoneRadiusCappedAtMax(t *testing.T) {
	z := testZone()
	z.Radius = 19

	if !z.TryExpand(grid.Coord{X: 20 + 17, Y: 20}) {
		t.Fatal("expected expansion")
	}
	if z.Radius != 20 {
		t.Errorf("Radius = %d, want capped at MaxRadius 20", z.Radius)
	}
}

func TestZoneReset(t *testing.T) {
	z := testZone()
	z.TryExpand(grid.Coord{X: 30, Y: 20})

	z.Reset(grid.Coord{X: 5, Y: 5})
	if z.Radius != 12 {
		t.Errorf("Radius = %d, want initial 12 after reset", z.Radius)
	}
	if z.Expansions != 0 {
		t.Errorf("Expansions = %d, want 0 after reset", z.Expansions)
	}
	if z.Center != (grid.Coord{X: 5, Y: 5}) {
		t.Errorf("Center = %v, want (5,5)", z.Center)
	}
	if !z.TryExpand(grid.Coord{X: 15, Y: 5}) {
		t.Error("cooldown should be cleared by reset")
	}
}
