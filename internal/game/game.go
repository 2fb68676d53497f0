// Package game wires the world, actors, combat orchestrator and
// terminal UI into a playable session.
package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Aunggrid/wildmarch/internal/combat"
	"github.com/Aunggrid/wildmarch/internal/config"
	"github.com/Aunggrid/wildmarch/internal/entity"
	"github.com/Aunggrid/wildmarch/internal/gamedata"
	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/pathfind"
	"github.com/Aunggrid/wildmarch/internal/ui"
	"github.com/Aunggrid/wildmarch/internal/world"
)

const tickInterval = 50 * time.Millisecond

// Game holds a full session: world, actors, combat state and screen.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer

	world  *world.TileMap
	player *entity.Player
	actors []entity.Actor

	finder *pathfind.Finder
	orch   *combat.Orchestrator
	rng    *rand.Rand

	// walkAccum paces auto-travel along the player's pending path.
	walkAccum float64

	quit     bool
	deadSeen bool
}

// New builds a session from the given configuration. The world layout,
// enemy placement and combat rolls all derive from cfg.Seed.
func New(ctx context.Context, cfg config.Config) (*Game, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	tm := world.NewTileMap(world.DefaultWidth, world.DefaultHeight, rng)
	tm.Generate(ctx)

	player := entity.NewPlayer("Ranger", tm.Regions[0].CenterTile())

	registry, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return nil, err
	}
	engine, err := gamedata.LoadStatusEngine()
	if err != nil {
		return nil, err
	}

	actors := spawnEnemies(tm, registry, rng)

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	renderer := ui.NewRenderer(screen)

	finder := pathfind.NewFinder(nil)
	orch := combat.New(cfg.Combat, player, actors, finder, engine, rng, &logEvents{renderer: renderer})

	return &Game{
		screen:   screen,
		renderer: renderer,
		world:    tm,
		player:   player,
		actors:   actors,
		finder:   finder,
		orch:     orch,
		rng:      rng,
	}, nil
}

// Run executes the main loop until the player quits or the session
// context is cancelled.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	g.renderer.PushLog("You step into the wilds.")
	g.draw()

	for !g.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			g.handleEvent(ctx, ev)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > 0.25 {
				dt = 0.25
			}
			g.update(ctx, dt)
		}
		g.draw()
	}
	return nil
}

func (g *Game) update(ctx context.Context, dt float64) {
	if g.orch.Phase() == combat.PhaseExploration {
		g.followPath(dt)
		tc := g.turnContext()
		for _, a := range g.actors {
			if e, ok := a.(*entity.Enemy); ok && e.IsAlive() {
				e.UpdateExploration(dt, g.world, tc)
			}
		}
	}
	g.orch.Update(ctx, dt, g.world)
	if !g.player.IsAlive() && !g.deadSeen {
		g.deadSeen = true
		g.renderer.PushLog("You have fallen. Press q to quit.")
	}
}

// followPath advances the player along a pending auto-travel path at a
// speed-scaled pace. Combat starting clears the path.
func (g *Game) followPath(dt float64) {
	if len(g.player.Path) == 0 {
		return
	}
	g.walkAccum += dt * float64(g.player.Speed()) / 25.0
	for g.walkAccum >= 1 && len(g.player.Path) > 0 {
		g.walkAccum--
		next := g.player.Path[0]
		if g.actorAt(next) != nil {
			g.player.ClearPath()
			return
		}
		g.player.SetTile(next)
		g.player.Path = g.player.Path[1:]
	}
}

// startTravel paths the player to a random other region's center.
func (g *Game) startTravel() {
	if len(g.world.Regions) < 2 {
		return
	}
	here := g.world.RegionIndexAt(g.player.Tile())
	for tries := 0; tries < 8; tries++ {
		i := g.rng.Intn(len(g.world.Regions))
		if i == here {
			continue
		}
		if path := g.finder.FindPath(g.world, g.player.Tile(), g.world.Regions[i].CenterTile()); path != nil {
			g.player.Path = path
			g.walkAccum = 0
			g.renderer.PushLog("You set off across the wilds.")
			return
		}
	}
}

func (g *Game) turnContext() *entity.TurnContext {
	return &entity.TurnContext{
		Grid:   g.world,
		Finder: g.finder,
		Player: g.player,
		Actors: g.actors,
		Rand:   g.rng,
	}
}

func (g *Game) draw() {
	g.renderer.Draw(g.world, g.player, g.actors, g.orch)
}

func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventKey:
		g.handleKey(ctx, ev)
	}
}

func (g *Game) handleKey(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
		g.quit = true
		return
	}
	if !g.player.IsAlive() {
		return
	}

	if d, ok := moveDelta(ev); ok {
		g.player.ClearPath()
		g.movePlayer(d)
		return
	}

	switch {
	case ev.Rune() == 'g':
		if g.orch.Phase() == combat.PhaseExploration {
			g.startTravel()
		}
	case ev.Rune() == 'f':
		if target := g.orch.NearestEnemy(); target != nil {
			g.orch.PlayerAttack(target, g.world)
		}
	case ev.Rune() == 'a':
		if targets := g.orch.EnemiesInRange(1); len(targets) > 0 {
			g.orch.PlayerMeleeAttack(targets[0], g.world)
		}
	case ev.Rune() == 'c':
		g.orch.ConvertAPtoMP(1)
	case ev.Rune() == 'e':
		g.orch.TryEscape(ctx)
	case ev.Rune() == ' ' || ev.Key() == tcell.KeyEnter:
		g.orch.PlayerEndTurn(ctx)
	}
}

// moveDelta maps arrow keys and vi-style keys (with yubn diagonals) to
// a movement step.
func moveDelta(ev *tcell.EventKey) (grid.Coord, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return grid.Coord{Y: -1}, true
	case tcell.KeyDown:
		return grid.Coord{Y: 1}, true
	case tcell.KeyLeft:
		return grid.Coord{X: -1}, true
	case tcell.KeyRight:
		return grid.Coord{X: 1}, true
	}
	switch ev.Rune() {
	case 'h':
		return grid.Coord{X: -1}, true
	case 'l':
		return grid.Coord{X: 1}, true
	case 'k':
		return grid.Coord{Y: -1}, true
	case 'j':
		return grid.Coord{Y: 1}, true
	case 'y':
		return grid.Coord{X: -1, Y: -1}, true
	case 'u':
		return grid.Coord{X: 1, Y: -1}, true
	case 'b':
		return grid.Coord{X: -1, Y: 1}, true
	case 'n':
		return grid.Coord{X: 1, Y: 1}, true
	}
	return grid.Coord{}, false
}

func (g *Game) movePlayer(delta grid.Coord) {
	target := g.player.Tile().Add(delta.X, delta.Y)

	if g.orch.Phase() == combat.PhasePlayerTurn {
		g.orch.PlayerMove(target, g.world)
		return
	}
	if g.orch.Phase() != combat.PhaseExploration {
		return
	}
	if !g.finder.CanStep(g.world, g.player.Tile(), target) {
		return
	}
	if g.actorAt(target) != nil {
		return
	}
	g.player.SetTile(target)
}

func (g *Game) actorAt(c grid.Coord) entity.Actor {
	for _, a := range g.actors {
		if a.IsAlive() && a.Tile() == c {
			return a
		}
	}
	return nil
}
