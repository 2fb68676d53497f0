package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Aunggrid/wildmarch/internal/combat"
	"github.com/Aunggrid/wildmarch/internal/config"
	"github.com/Aunggrid/wildmarch/internal/entity"
	"github.com/Aunggrid/wildmarch/internal/gamedata"
	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/pathfind"
	"github.com/Aunggrid/wildmarch/internal/status"
	"github.com/Aunggrid/wildmarch/internal/world"
)

const (
	simTickSeconds = 0.05
	simMaxTicks    = 20000
)

func newSimCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a headless scripted encounter and log the result",
		Long: `Sim generates a world from the seed, walks the ranger toward the
nearest hostile until combat triggers, then plays both sides with a
simple policy until the encounter resolves. Useful for balancing and
for exercising the combat engine without a terminal UI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(cmd.Context(), verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every combat event")
	return cmd
}

// simEvents mirrors combat notifications into structured log output.
type simEvents struct {
	combat.NopEvents
	log *log.Logger
}

func (e *simEvents) CombatStarted(instigator entity.Actor) {
	name := "none"
	if instigator != nil {
		name = instigator.Name()
	}
	e.log.Info("combat started", "instigator", name)
}

func (e *simEvents) CombatEnded(outcome combat.Outcome) {
	e.log.Info("combat ended", "outcome", outcome)
}

func (e *simEvents) TurnStarted(actor entity.Actor) {
	e.log.Debug("turn", "actor", actor.Name(), "hp", actor.HP())
}

func (e *simEvents) ZoneExpanded(radius int) {
	e.log.Info("zone expanded", "radius", radius)
}

func (e *simEvents) Log(msg string) {
	e.log.Debug(msg)
}

func (e *simEvents) Damage(attacker, target entity.Actor, amount int) {
	if attacker == nil {
		e.log.Debug("periodic damage", "target", target.Name(), "amount", amount)
		return
	}
	e.log.Debug("hit", "attacker", attacker.Name(), "target", target.Name(), "amount", amount)
}

func (e *simEvents) Miss(attacker, target entity.Actor) {
	e.log.Debug("miss", "attacker", attacker.Name(), "target", target.Name())
}

func (e *simEvents) StatusApplied(target entity.Actor, effect status.EffectType) {
	e.log.Debug("status", "target", target.Name(), "effect", effect)
}

func (e *simEvents) ActorDied(actor entity.Actor, at grid.Coord) {
	e.log.Info("death", "actor", actor.Name(), "at", at)
}

func runSim(ctx context.Context, verbose bool) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "wildmarch",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	seed := cfg.Seed
	if flagSeed != 0 {
		seed = flagSeed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Info("simulating", "seed", seed)

	tm := world.NewTileMap(world.DefaultWidth, world.DefaultHeight, rng)
	tm.Generate(ctx)

	player := entity.NewPlayer("Ranger", tm.Regions[0].CenterTile())

	registry, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return err
	}
	engine, err := gamedata.LoadStatusEngine()
	if err != nil {
		return err
	}

	var actors []entity.Actor
	for i := 1; i < len(tm.Regions) && len(actors) < 4; i++ {
		def := registry.SpawnRandom(rng)
		if def == nil {
			continue
		}
		pos := tm.RandomPointInRegion(i)
		if !tm.Walkable(pos) {
			continue
		}
		enemy := entity.NewEnemy(def, pos)
		enemy.Provoke()
		actors = append(actors, enemy)
	}
	if len(actors) == 0 {
		return fmt.Errorf("no enemies spawned, nothing to simulate")
	}

	finder := pathfind.NewFinder(nil)
	orch := combat.New(cfg.Combat, player, actors, finder, engine, rng, &simEvents{log: logger})

	tc := &entity.TurnContext{
		Grid:   tm,
		Finder: finder,
		Player: player,
		Actors: actors,
		Rand:   rng,
	}

	for tick := 0; tick < simMaxTicks; tick++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		switch orch.Phase() {
		case combat.PhaseExploration:
			if orch.LastOutcome() != combat.OutcomeNone {
				logger.Info("simulation complete",
					"outcome", orch.LastOutcome(),
					"hp", player.HP(),
					"ticks", tick)
				return nil
			}
			stepToward(player, nearestLiving(player, actors), tm, finder, actors)
			for _, a := range actors {
				if e, ok := a.(*entity.Enemy); ok && e.IsAlive() {
					e.UpdateExploration(simTickSeconds, tm, tc)
				}
			}
		case combat.PhasePlayerTurn:
			playPlayerTurn(ctx, orch, player, tm, finder)
		}
		orch.Update(ctx, simTickSeconds, tm)

		if !player.IsAlive() {
			logger.Info("simulation complete", "outcome", combat.OutcomeDefeat, "ticks", tick)
			return nil
		}
		if nearestLiving(player, actors) == nil && !orch.InCombat() {
			logger.Info("simulation complete",
				"outcome", combat.OutcomeVictory,
				"hp", player.HP(),
				"ticks", tick)
			return nil
		}
	}
	logger.Warn("simulation hit tick limit without resolving")
	return nil
}

// playPlayerTurn runs one greedy action: melee when adjacent, shoot
// when in range, otherwise close distance, and end the turn when no
// action is possible.
func playPlayerTurn(ctx context.Context, orch *combat.Orchestrator, player *entity.Player, tm *world.TileMap, finder *pathfind.Finder) {
	if adjacent := orch.EnemiesInRange(1); len(adjacent) > 0 && player.ActionPoints() >= player.Weapon.MeleeAPCost {
		if orch.PlayerMeleeAttack(adjacent[0], tm) {
			return
		}
	}
	if target := orch.NearestEnemy(); target != nil {
		if grid.Chebyshev(player.Tile(), target.Tile()) <= player.Weapon.Range &&
			player.ActionPoints() >= player.Weapon.APCost {
			if orch.PlayerAttack(target, tm) {
				return
			}
		}
		if player.MovementPoints() > 0 || player.ActionPoints() > 0 {
			if path := finder.FindPath(tm, player.Tile(), target.Tile()); len(path) > 0 {
				if orch.PlayerMove(path[0], tm) {
					return
				}
			}
		}
	}
	orch.PlayerEndTurn(ctx)
}

func nearestLiving(player *entity.Player, actors []entity.Actor) entity.Actor {
	var best entity.Actor
	bestDist := 0
	for _, a := range actors {
		if !a.IsAlive() {
			continue
		}
		d := grid.Chebyshev(player.Tile(), a.Tile())
		if best == nil || d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

// stepToward walks the player one tile along the path to target during
// exploration.
func stepToward(player *entity.Player, target entity.Actor, tm *world.TileMap, finder *pathfind.Finder, actors []entity.Actor) {
	if target == nil {
		return
	}
	path := finder.FindPath(tm, player.Tile(), target.Tile())
	if len(path) == 0 {
		return
	}
	step := path[0]
	for _, a := range actors {
		if a.IsAlive() && a.Tile() == step {
			return
		}
	}
	player.SetTile(step)
}
