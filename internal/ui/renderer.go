package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Aunggrid/wildmarch/internal/combat"
	"github.com/Aunggrid/wildmarch/internal/entity"
	"github.com/Aunggrid/wildmarch/internal/grid"
	"github.com/Aunggrid/wildmarch/internal/world"
)

const logLines = 4

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleRock    = styleDefault.Foreground(tcell.ColorGray)
	styleGrass   = styleDefault.Foreground(tcell.ColorDarkGreen)
	styleBrush   = styleDefault.Foreground(tcell.ColorOliveDrab)
	styleWater   = styleDefault.Foreground(tcell.ColorBlue)
	stylePlayer  = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleZone    = styleDefault.Foreground(tcell.ColorDarkRed)
	styleHUD     = styleDefault.Foreground(tcell.ColorWhite)
	styleLog     = styleDefault.Foreground(tcell.ColorSilver)
	styleDead    = styleDefault.Foreground(tcell.ColorDarkGray)
)

// Renderer draws the world, actors and combat state onto a Screen.
type Renderer struct {
	screen *Screen
	log    []string
}

func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// PushLog appends a message to the scrolling event log.
func (r *Renderer) PushLog(msg string) {
	r.log = append(r.log, msg)
	if len(r.log) > logLines {
		r.log = r.log[len(r.log)-logLines:]
	}
}

// Draw renders a full frame.
func (r *Renderer) Draw(tm *world.TileMap, player *entity.Player, actors []entity.Actor, orch *combat.Orchestrator) {
	r.screen.Clear()
	r.drawMap(tm)
	if orch.InCombat() {
		r.drawZone(tm, orch.Zone())
	}
	r.drawActors(actors)
	r.drawPlayer(player)
	r.drawHUD(tm, player, orch)
	r.drawLog(tm)
	r.screen.Show()
}

func (r *Renderer) drawMap(tm *world.TileMap) {
	for y := 0; y < tm.Height; y++ {
		for x := 0; x < tm.Width; x++ {
			t := tm.Tiles[y][x]
			r.screen.SetContent(x, y, t.Rune(), tileStyle(t))
		}
	}
}

func tileStyle(t world.Tile) tcell.Style {
	switch t {
	case world.TileRock:
		return styleRock
	case world.TileBrush:
		return styleBrush
	case world.TileWater:
		return styleWater
	default:
		return styleGrass
	}
}

// drawZone marks the combat zone boundary ring.
func (r *Renderer) drawZone(tm *world.TileMap, z *combat.Zone) {
	for y := 0; y < tm.Height; y++ {
		for x := 0; x < tm.Width; x++ {
			c := grid.Coord{X: x, Y: y}
			if z.Distance(c) == z.Radius {
				r.screen.SetContent(x, y, '·', styleZone)
			}
		}
	}
}

func (r *Renderer) drawActors(actors []entity.Actor) {
	for _, a := range actors {
		e, ok := a.(*entity.Enemy)
		if !ok {
			continue
		}
		pos := e.Tile()
		style := styleDefault.Foreground(e.Color())
		if !e.IsAlive() {
			r.screen.SetContent(pos.X, pos.Y, '%', styleDead)
			continue
		}
		r.screen.SetContent(pos.X, pos.Y, e.Glyph(), style)
	}
}

func (r *Renderer) drawPlayer(p *entity.Player) {
	pos := p.Tile()
	r.screen.SetContent(pos.X, pos.Y, '@', stylePlayer)
}

func (r *Renderer) drawHUD(tm *world.TileMap, p *entity.Player, orch *combat.Orchestrator) {
	line := fmt.Sprintf("HP %d/%d", p.HP(), p.MaxHP())
	if orch.InCombat() {
		line += fmt.Sprintf("  AP %d  MP %d", p.ActionPoints(), p.MovementPoints())
		if orch.ReservedAP() > 0 {
			line += fmt.Sprintf(" (+%d)", orch.ReservedAP())
		}
		line += fmt.Sprintf("  zone %d", orch.ZoneRadius())
	}
	if p.Weapon.Ammo >= 0 {
		line += fmt.Sprintf("  ammo %d", p.Weapon.Ammo)
	}
	line += "  [" + orch.Phase().String() + "]"
	r.drawText(0, tm.Height, line, styleHUD)
}

func (r *Renderer) drawLog(tm *world.TileMap) {
	for i, msg := range r.log {
		r.drawText(0, tm.Height+1+i, msg, styleLog)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, style)
	}
}
