package combat

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Aunggrid/wildmarch/internal/config"
	"github.com/Aunggrid/wildmarch/internal/entity"
	"github.com/Aunggrid/wildmarch/internal/gamedata"
	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/pathfind"
	"github.com/Aunggrid/wildmarch/internal/status"
)

// flatMap is an open 50x50 test grid.
type flatMap struct{}

func (flatMap) InBounds(c grid.Coord) bool {
	return c.X >= 0 && c.X < 50 && c.Y >= 0 && c.Y < 50
}
func (m flatMap) Walkable(c grid.Coord) bool { return m.InBounds(c) }
func (flatMap) MoveCost(grid.Coord) float64  { return 1.0 }

// fixedSource yields a small constant, making every attack hit and all
// initiative rolls equal.
type fixedSource struct{}

func (fixedSource) Int63() int64 { return 42 }
func (fixedSource) Seed(int64)   {}

// missSource yields a value mapping to roughly 0.9 from Float64, above
// the base hit chance, so every attack misses.
type missSource struct{}

func (missSource) Int63() int64 { return 8301034833169298228 }
func (missSource) Seed(int64)   {}

func testEnemyDef(name string, hostility string) *gamedata.EnemyDef {
	return &gamedata.EnemyDef{
		ID:          name,
		Name:        name,
		Glyph:       "r",
		HP:          10,
		Speed:       50,
		MaxAP:       4,
		MaxMP:       3,
		AttackDmg:   3,
		AttackCost:  2,
		WeaponRange: 1,
		Hostility:   hostility,
		AggroRange:  8,
	}
}

func testStatusEngine() *status.Engine {
	return status.NewEngine([]status.Definition{
		{Type: "stunned", Name: "Stunned", Category: status.CategoryStun, Stacking: status.NoStack, MaxStacks: 1, SpeedMult: 1, DamageMult: 1, AccuracyMult: 1},
		{Type: "burning", Name: "Burning", Category: status.CategoryDebuff, Stacking: status.StackIntensity, MaxStacks: 3, SpeedMult: 1, DamageMult: 1, AccuracyMult: 1, PeriodicDmg: 2},
	}, nil)
}

func testCombatConfig() config.CombatConfig {
	return config.Default().Combat
}

func newTestOrchestrator(src rand.Source, actors ...entity.Actor) (*Orchestrator, *entity.Player) {
	player := entity.NewPlayer("Ranger", grid.Coord{X: 20, Y: 20})
	o := New(testCombatConfig(), player, actors, pathfind.NewFinder(nil), testStatusEngine(), rand.New(src), nil)
	return o, player
}

func TestStartCombatGathersZoneMembers(t *testing.T) {
	near := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 22, Y: 20})
	far := entity.NewEnemy(testEnemyDef("straggler", "aggressive"), grid.Coord{X: 45, Y: 45})
	o, player := newTestOrchestrator(fixedSource{}, near, far)

	o.StartCombat(context.Background(), near)

	if !o.InCombat() {
		t.Fatal("combat did not start")
	}
	if center := o.Zone().Center; center != (grid.Coord{X: 21, Y: 20}) {
		t.Errorf("zone center = %v, want midpoint (21,20)", center)
	}
	if !near.InCombatZone() {
		t.Error("nearby enemy not marked a zone member")
	}
	if far.InCombatZone() {
		t.Error("distant enemy wrongly marked a zone member")
	}
	if !player.InCombatZone() {
		t.Error("player not marked a zone member")
	}
	if got := len(o.TurnOrder()); got != 2 {
		t.Errorf("turn order has %d entries, want 2", got)
	}
}

func TestStartCombatPassiveWildlifeAborts(t *testing.T) {
	deer := entity.NewEnemy(testEnemyDef("deer", "passive"), grid.Coord{X: 22, Y: 20})
	o, _ := newTestOrchestrator(fixedSource{}, deer)

	o.StartCombat(context.Background(), nil)

	if o.InCombat() {
		t.Error("passive wildlife should not start combat")
	}
	if deer.InCombatZone() {
		t.Error("deer left marked a zone member after abort")
	}
}

func TestInitiativeTiesFavorPlayer(t *testing.T) {
	// With a constant rng every roll is identical and the player's speed
	// matches the enemies', so every initiative ties. The player must
	// come out first.
	a := entity.NewEnemy(testEnemyDef("a", "aggressive"), grid.Coord{X: 22, Y: 20})
	b := entity.NewEnemy(testEnemyDef("b", "aggressive"), grid.Coord{X: 18, Y: 20})
	o, _ := newTestOrchestrator(fixedSource{}, a, b)

	o.StartCombat(context.Background(), a)

	order := o.TurnOrder()
	if len(order) != 3 {
		t.Fatalf("turn order has %d entries, want 3", len(order))
	}
	if !order[0].IsPlayer() {
		t.Errorf("first in order = %s, want the player on tied rolls", order[0].Name())
	}
	if o.Phase() != PhasePlayerTurn {
		t.Errorf("phase = %v, want player turn", o.Phase())
	}
}

func TestPlayerMoveSpendsMovementThenConvertsAP(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 25, Y: 25})
	o, player := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), nil)
	if o.Phase() != PhasePlayerTurn {
		t.Fatalf("phase = %v, want player turn", o.Phase())
	}

	startAP := player.ActionPoints()
	for i := 0; i < player.MaxMovementPoints(); i++ {
		target := player.Tile().Add(1, 0)
		if !o.PlayerMove(target, flatMap{}) {
			t.Fatalf("move %d refused", i)
		}
	}
	if player.MovementPoints() != 0 {
		t.Fatalf("MP = %d, want 0 after spending all movement", player.MovementPoints())
	}
	if player.ActionPoints() != startAP {
		t.Fatalf("AP changed while MP remained: %d", player.ActionPoints())
	}

	// Next step must burn one AP as a movement point.
	if !o.PlayerMove(player.Tile().Add(1, 0), flatMap{}) {
		t.Fatal("move with auto-convert refused")
	}
	if player.ActionPoints() != startAP-1 {
		t.Errorf("AP = %d, want %d after auto-convert", player.ActionPoints(), startAP-1)
	}
	if player.MovementPoints() != 0 {
		t.Errorf("MP = %d, want 0 (converted point was spent)", player.MovementPoints())
	}
}

func TestPlayerMoveRejectsOccupiedAndNonAdjacent(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 21, Y: 20})
	o, player := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), enemy)

	if o.PlayerMove(enemy.Tile(), flatMap{}) {
		t.Error("moved onto an occupied tile")
	}
	if o.PlayerMove(player.Tile().Add(3, 0), flatMap{}) {
		t.Error("moved three tiles in one step")
	}
}

func TestConvertAPtoMP(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 22, Y: 20})
	o, player := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), enemy)

	ap, mp := player.ActionPoints(), player.MovementPoints()
	if !o.ConvertAPtoMP(2) {
		t.Fatal("conversion refused")
	}
	if player.ActionPoints() != ap-2 || player.MovementPoints() != mp+2 {
		t.Errorf("AP/MP = %d/%d, want %d/%d", player.ActionPoints(), player.MovementPoints(), ap-2, mp+2)
	}
	if o.ConvertAPtoMP(100) {
		t.Error("converted more AP than available")
	}
	if o.ConvertAPtoMP(0) {
		t.Error("converted zero")
	}
}

func TestPlayerAttackHitsAndSpendsAP(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 23, Y: 20})
	o, player := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), enemy)

	hpBefore := enemy.HP()
	apBefore := player.ActionPoints()
	if !o.PlayerAttack(enemy, flatMap{}) {
		t.Fatal("attack refused")
	}
	if enemy.HP() != hpBefore-player.Weapon.Damage {
		t.Errorf("enemy HP = %d, want %d", enemy.HP(), hpBefore-player.Weapon.Damage)
	}
	if player.ActionPoints() != apBefore-player.Weapon.APCost {
		t.Errorf("AP = %d, want %d", player.ActionPoints(), apBefore-player.Weapon.APCost)
	}
}

func TestPlayerAttackCanMiss(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 23, Y: 20})
	o, player := newTestOrchestrator(missSource{}, enemy)
	o.StartCombat(context.Background(), enemy)

	hpBefore := enemy.HP()
	if !o.PlayerAttack(enemy, flatMap{}) {
		t.Fatal("attack refused (a miss still spends AP)")
	}
	if enemy.HP() != hpBefore {
		t.Errorf("enemy HP = %d, want unchanged %d on a miss", enemy.HP(), hpBefore)
	}
	if player.ActionPoints() != player.MaxActionPoints()-player.Weapon.APCost {
		t.Errorf("AP = %d, a miss must still spend the cost", player.ActionPoints())
	}
}

func TestPlayerMeleeAttackRequiresAdjacency(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 23, Y: 20})
	o, player := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), enemy)

	if o.PlayerMeleeAttack(enemy, flatMap{}) {
		t.Error("melee hit a target three tiles away")
	}

	enemy.SetTile(player.Tile().Add(1, 1))
	if !o.PlayerMeleeAttack(enemy, flatMap{}) {
		t.Error("melee refused against an adjacent target")
	}
}

func TestReservedAPCapAndGrant(t *testing.T) {
	// The enemy starts far enough away that its turn is movement only.
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 28, Y: 20})
	o, player := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), enemy)
	if o.Phase() != PhasePlayerTurn {
		t.Fatalf("phase = %v, want player turn", o.Phase())
	}

	if !o.PlayerEndTurn(context.Background()) {
		t.Fatal("end turn refused")
	}
	wantReserve := o.cfg.Economy.MaxReservedAP
	if o.ReservedAP() != wantReserve {
		t.Fatalf("ReservedAP = %d, want capped at %d", o.ReservedAP(), wantReserve)
	}

	// Run the enemy turn until the player's turn comes back around.
	for i := 0; i < 10 && o.Phase() == PhaseEnemyTurn; i++ {
		o.Update(context.Background(), 0.05, flatMap{})
	}
	if o.Phase() != PhasePlayerTurn {
		t.Fatalf("phase = %v, want player turn after the enemy acted", o.Phase())
	}
	if got := player.ActionPoints(); got != player.MaxActionPoints()+wantReserve {
		t.Errorf("AP = %d, want %d (base plus reserve)", got, player.MaxActionPoints()+wantReserve)
	}
	if o.ReservedAP() != 0 {
		t.Errorf("ReservedAP = %d, want 0 after the grant", o.ReservedAP())
	}
}

func TestZoneExpansionPullsInNewMembers(t *testing.T) {
	near := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 22, Y: 20})
	outside := entity.NewEnemy(testEnemyDef("lurker", "aggressive"), grid.Coord{X: 33, Y: 20})
	o, player := newTestOrchestrator(fixedSource{}, near, outside)

	o.StartCombat(context.Background(), nil) // zone centered on the player at (20,20)
	if outside.InCombatZone() {
		t.Fatal("lurker at distance 13 should start outside the radius-12 zone")
	}
	if got := len(o.TurnOrder()); got != 2 {
		t.Fatalf("turn order has %d entries, want 2", got)
	}

	// Walk the player to the edge: distance 9 from center, within the
	// threshold of the boundary.
	player.SetTile(grid.Coord{X: 29, Y: 20})
	o.Update(context.Background(), 0.05, flatMap{})

	if o.ZoneRadius() != 14 {
		t.Fatalf("zone radius = %d, want 14 after edge expansion", o.ZoneRadius())
	}
	if o.EscapeAttempts() != 1 {
		t.Errorf("EscapeAttempts = %d, want 1", o.EscapeAttempts())
	}
	if !outside.InCombatZone() {
		t.Fatal("lurker not pulled in by the expansion")
	}

	order := o.TurnOrder()
	if len(order) != 3 {
		t.Fatalf("turn order has %d entries, want 3", len(order))
	}
	if order[len(order)-1].ID() != outside.ID() {
		t.Error("pulled-in member should be appended at the end, not re-rolled")
	}
}

func TestChasingEnemyJoinsAsReinforcement(t *testing.T) {
	near := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 22, Y: 20})
	chaser := entity.NewEnemy(testEnemyDef("chaser", "aggressive"), grid.Coord{X: 45, Y: 20})
	o, _ := newTestOrchestrator(fixedSource{}, near, chaser)

	o.StartCombat(context.Background(), nil)
	if chaser.InCombatZone() {
		t.Fatal("distant idle enemy joined at combat start")
	}

	chaser.SetState(entity.StateChasing)
	o.PlayerEndTurn(context.Background())

	if !chaser.InCombatZone() {
		t.Error("chasing enemy was not recruited at the turn boundary")
	}
}

func TestStunnedPlayerLosesTurn(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 28, Y: 20})
	o, player := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), enemy)

	o.ApplyStatus(player, "stunned", 3, status.TimingTurnBased, "trap")
	o.PlayerEndTurn(context.Background())

	// One tick runs the enemy's turn, then the player's stunned turn is
	// skipped: both currencies zeroed, cursor back on the enemy.
	o.Update(context.Background(), 0.05, flatMap{})
	if o.Phase() != PhaseEnemyTurn {
		t.Fatalf("phase = %v, want the stunned player's turn skipped", o.Phase())
	}
	if player.ActionPoints() != 0 || player.MovementPoints() != 0 {
		t.Errorf("stunned player has AP %d MP %d, want 0/0", player.ActionPoints(), player.MovementPoints())
	}
}

func TestPeriodicDamageAtTurnStart(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 28, Y: 20})
	o, _ := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), enemy)

	o.ApplyStatus(enemy, "burning", 3, status.TimingTurnBased, "torch")
	hpBefore := enemy.HP()
	o.PlayerEndTurn(context.Background())

	if enemy.HP() != hpBefore-2 {
		t.Errorf("enemy HP = %d, want %d after burn tick", enemy.HP(), hpBefore-2)
	}
}

func TestVictoryReturnsToExploration(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 22, Y: 20})
	o, _ := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), enemy)

	enemy.TakeDamage(1000)
	o.PlayerEndTurn(context.Background())

	if o.Phase() != PhaseCombatEnd {
		t.Fatalf("phase = %v, want combat end", o.Phase())
	}
	if o.LastOutcome() != OutcomeVictory {
		t.Errorf("outcome = %v, want victory", o.LastOutcome())
	}
	if enemy.InCombatZone() {
		t.Error("dead enemy still marked a zone member")
	}

	o.Update(context.Background(), 0.05, flatMap{})
	if o.Phase() != PhaseExploration {
		t.Errorf("phase = %v, want exploration one tick after combat end", o.Phase())
	}
}

func TestDefeatWhenPlayerDies(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 22, Y: 20})
	o, player := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), enemy)

	player.TakeDamage(1000)
	o.PlayerEndTurn(context.Background())

	if o.LastOutcome() != OutcomeDefeat {
		t.Errorf("outcome = %v, want defeat", o.LastOutcome())
	}
	if o.Phase() != PhaseCombatEnd {
		t.Errorf("phase = %v, want combat end", o.Phase())
	}
}

func TestFleeingEnemyLeavesCombat(t *testing.T) {
	raider := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 22, Y: 20})
	coward := entity.NewEnemy(testEnemyDef("coward", "aggressive"), grid.Coord{X: 19, Y: 20})
	o, _ := newTestOrchestrator(fixedSource{}, raider, coward)
	o.StartCombat(context.Background(), nil)

	// Teleport the coward far past the flee boundary before its turn.
	coward.SetTile(grid.Coord{X: 45, Y: 20})
	o.PlayerEndTurn(context.Background())
	for i := 0; i < 10 && o.Phase() == PhaseEnemyTurn; i++ {
		o.Update(context.Background(), 0.05, flatMap{})
	}

	if coward.InCombatZone() {
		t.Error("fled enemy still marked a zone member")
	}
	for _, a := range o.TurnOrder() {
		if a.ID() == coward.ID() {
			t.Error("fled enemy still in the turn order")
		}
	}
	if !raider.InCombatZone() {
		t.Error("remaining enemy should stay in combat")
	}
}

func TestTryEscapeStealth(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 22, Y: 20})
	o, _ := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), enemy)

	if o.TryEscape(context.Background()) {
		t.Fatal("escape succeeded with no stealth and no escape ability")
	}

	o.EnterStealth("smoke bomb")
	if !o.TryEscape(context.Background()) {
		t.Fatal("stealth escape refused")
	}
	if o.LastOutcome() != OutcomeEscaped {
		t.Errorf("outcome = %v, want escaped", o.LastOutcome())
	}
}

func TestTryEscapeNeedsZoneEdge(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 22, Y: 20})
	o, player := newTestOrchestrator(fixedSource{}, enemy)
	o.StartCombat(context.Background(), nil) // zone centered on player

	o.EnableEscape("boots of the hare")
	if o.TryEscape(context.Background()) {
		t.Fatal("escape succeeded from the zone center")
	}

	player.SetTile(grid.Coord{X: 30, Y: 20}) // distance 10 of radius 12
	if !o.TryEscape(context.Background()) {
		t.Fatal("edge escape refused")
	}
	if o.LastOutcome() != OutcomeEscaped {
		t.Errorf("outcome = %v, want escaped", o.LastOutcome())
	}
}

func TestForceCombatEnd(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 22, Y: 20})
	o, _ := newTestOrchestrator(fixedSource{}, enemy)

	o.ForceCombatEnd(context.Background()) // no-op outside combat
	if o.LastOutcome() != OutcomeNone {
		t.Fatalf("outcome = %v, want none before combat", o.LastOutcome())
	}

	o.StartCombat(context.Background(), enemy)
	o.ForceCombatEnd(context.Background())
	if o.LastOutcome() != OutcomeAborted {
		t.Errorf("outcome = %v, want aborted", o.LastOutcome())
	}
}

func TestExplorationTriggerStartsCombat(t *testing.T) {
	enemy := entity.NewEnemy(testEnemyDef("raider", "aggressive"), grid.Coord{X: 24, Y: 20})
	o, _ := newTestOrchestrator(fixedSource{}, enemy)

	o.Update(context.Background(), 0.05, flatMap{})
	if o.InCombat() {
		t.Fatal("idle enemy triggered combat")
	}

	enemy.SetState(entity.StateChasing)
	o.Update(context.Background(), 0.05, flatMap{})
	if !o.InCombat() {
		t.Error("chasing enemy within trigger range did not start combat")
	}
}

func TestNearestEnemyAndRange(t *testing.T) {
	near := entity.NewEnemy(testEnemyDef("near", "aggressive"), grid.Coord{X: 21, Y: 20})
	far := entity.NewEnemy(testEnemyDef("far", "aggressive"), grid.Coord{X: 26, Y: 20})
	o, _ := newTestOrchestrator(fixedSource{}, near, far)
	o.StartCombat(context.Background(), nil)

	if got := o.NearestEnemy(); got == nil || got.ID() != near.ID() {
		t.Errorf("NearestEnemy = %v, want the adjacent raider", got)
	}
	if got := o.EnemiesInRange(1); len(got) != 1 {
		t.Errorf("EnemiesInRange(1) = %d enemies, want 1", len(got))
	}
	if got := o.EnemiesInRange(10); len(got) != 2 {
		t.Errorf("EnemiesInRange(10) = %d enemies, want 2", len(got))
	}
}
