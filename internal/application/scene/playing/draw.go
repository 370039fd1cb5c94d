package playing

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/bountyhunter/internal/application/fx"
	"github.com/younwookim/bountyhunter/internal/application/state"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{46, 34, 26, 255}
	colorObstacle   = color.RGBA{110, 80, 50, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorOpponent   = color.RGBA{200, 100, 100, 255}
	colorTracked    = color.RGBA{255, 215, 0, 255}
	colorPlayerShot = color.RGBA{255, 240, 160, 255}
	colorEnemyShot  = color.RGBA{255, 100, 100, 255}
	colorTrack      = color.RGBA{90, 70, 50, 255}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
)

// Draw renders the game screen (implements scene.Scene)
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	w := p.host.World()
	if w == nil {
		return
	}

	p.effects.Tracks(func(t fx.TrackData) {
		ebitenutil.DrawRect(screen, t.X-2, t.Y-2, 4, 4, colorTrack)
	})
	for _, o := range w.Obstacles() {
		ebitenutil.DrawRect(screen, o.X, o.Y, o.W, o.H, colorObstacle)
	}
	for _, c := range w.Characters() {
		p.drawCharacter(screen, c)
	}
	for _, pr := range w.Projectiles() {
		c := colorEnemyShot
		if pr.Owner == entity.RolePlayer {
			c = colorPlayerShot
		}
		ebitenutil.DrawRect(screen, pr.X, pr.Y, pr.W, pr.H, c)
	}
	p.effects.Particles(func(pt fx.ParticleData) {
		alpha := float64(pt.Life) / float64(pt.MaxLife)
		ebitenutil.DrawRect(screen, pt.X-1, pt.Y-1, 2, 2, fade(colorPlayerShot, alpha))
	})
	p.effects.Flashes(func(f fx.FlashData) {
		ebitenutil.DrawRect(screen, f.X-4, f.Y-4, 8, 8, fade(color.RGBA{255, 255, 255, 255}, f.Alpha))
	})

	p.drawHUD(screen)

	switch {
	case p.host.State() == state.StateIntro:
		p.drawCenter(screen, fmt.Sprintf("%s\n\n%s\n\nGet ready...", p.host.Mode().Name(), p.host.Scenario().Objectives))
	case p.host.Paused():
		ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), color.RGBA{0, 0, 0, 128})
		p.drawCenter(screen, "PAUSED\n\nPress ESC to resume")
	}
}

// drawCharacter draws a box squashed around its feet
func (p *Playing) drawCharacter(screen *ebiten.Image, c *entity.Character) {
	col := colorOpponent
	if c.Role == entity.RolePlayer {
		col = colorPlayer
	} else if c.Tracked {
		col = colorTracked
	}

	scale := p.effects.Scale(c.Role)
	h := c.H * scale
	wd := c.W / math.Max(scale, 0.1)
	x := c.X + (c.W-wd)/2
	ebitenutil.DrawRect(screen, x, c.Bottom()-h, wd, h, col)

	if c.MaxHealth > 1 && c.Role == entity.RoleOpponent {
		ratio := math.Max(float64(c.Health)/float64(c.MaxHealth), 0)
		ebitenutil.DrawRect(screen, c.X, c.Y-6, c.W, 3, colorHealthBG)
		ebitenutil.DrawRect(screen, c.X, c.Y-6, c.W*ratio, 3, colorHealthFG)
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	s := p.stats

	barX, barY, barW, barH := 10.0, float64(p.screenH-20), 100.0, 10.0
	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)
	if s.MaxHealth > 0 {
		ratio := math.Max(float64(s.Health)/float64(s.MaxHealth), 0)
		ebitenutil.DrawRect(screen, barX, barY, barW*ratio, barH, colorHealthFG)
	}

	ammo := fmt.Sprint(s.Ammo)
	if s.Ammo == entity.UnlimitedAmmo {
		ammo = "inf"
	}
	line := fmt.Sprintf("Score: %d  Ammo: %s  Accuracy: %.0f%%  Combo: %d  Time: %.1fs",
		s.Score, ammo, s.Accuracy, s.Combo, s.Elapsed)

	switch p.opts.Mode {
	case entity.ModeChase:
		line += fmt.Sprintf("  Wave: %d  Outlaws: %d", s.Wave, s.Opponents)
	case entity.ModeTracking:
		line += fmt.Sprintf("  Kills: %d/%d", s.Kills, p.config.Tracking.KillGoal)
	}
	ebitenutil.DebugPrintAt(screen, line, 10, p.screenH-38)

	ebitenutil.DebugPrint(screen, controlsHelp(p.opts.Mode))
}

func controlsHelp(m entity.Mode) string {
	switch m {
	case entity.ModeDuel:
		return "A/D: Move | Space: Jump | F/Click: Shoot | ESC: Pause"
	case entity.ModeChase:
		return "WASD: Move | Click: Shoot at cursor | ESC: Pause"
	default:
		return "WASD: Move | Click: Shoot | E: Eagle Eye | Shift: Slow motion | ESC: Pause"
	}
}

func (p *Playing) drawCenter(screen *ebiten.Image, msg string) {
	ebitenutil.DebugPrintAt(screen, msg, p.screenW/2-80, p.screenH/2-30)
}

// fade scales a color by alpha using pre-multiplied alpha
func fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = math.Max(0, math.Min(alpha, 1))
	return color.RGBA{
		uint8(float64(c.R) * alpha),
		uint8(float64(c.G) * alpha),
		uint8(float64(c.B) * alpha),
		uint8(float64(c.A) * alpha),
	}
}
