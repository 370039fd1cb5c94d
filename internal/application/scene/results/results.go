// Package results provides the end-of-round screen.
package results

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // basicfont is a font.Face
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/bountyhunter/internal/application/scene"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

var (
	colorBackground = color.RGBA{20, 16, 12, 255}
	colorTitle      = color.RGBA{255, 215, 0, 255}
	colorText       = color.RGBA{230, 220, 200, 255}
	colorHint       = color.RGBA{150, 140, 120, 255}
)

const lineHeight = 18

// Results shows the final result of a round
type Results struct {
	result  entity.RoundResult
	best    *entity.RoundResult
	rematch func() (scene.Scene, error)

	screenW int
	screenH int
}

// New creates the results screen. best is the mode's leaderboard top, if any.
// rematch builds the scene for another round.
func New(r entity.RoundResult, best *entity.RoundResult, screenW, screenH int, rematch func() (scene.Scene, error)) *Results {
	return &Results{
		result:  r,
		best:    best,
		rematch: rematch,
		screenW: screenW,
		screenH: screenH,
	}
}

func (s *Results) OnEnter() {}
func (s *Results) OnExit()  {}

// Update waits for a rematch or quit key (implements scene.Scene)
func (s *Results) Update(_ float64) (scene.Scene, error) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return nil, ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if s.rematch == nil {
			return nil, nil
		}
		return s.rematch()
	}
	return nil, nil
}

// Lines returns the text shown on the screen
func (s *Results) Lines() []string {
	r := s.result

	title := "ROUND OVER"
	switch r.Outcome {
	case entity.OutcomeWin:
		title = "VICTORY"
	case entity.OutcomeLoss:
		title = "DEFEATED"
	case entity.OutcomeTimeout:
		title = "TIME UP"
	}

	lines := []string{
		fmt.Sprintf("%s - %s (%s)", title, strings.ToUpper(string(r.Mode)), r.Difficulty),
		"",
		fmt.Sprintf("Grade:          %s", r.Grade),
		fmt.Sprintf("Score:          %d", r.Score),
		fmt.Sprintf("Accuracy:       %.1f%%", r.Accuracy),
		fmt.Sprintf("Reaction time:  %.0f ms", r.ReactionTimeMs),
		fmt.Sprintf("Strategy:       %.1f", r.StrategyRating),
		fmt.Sprintf("Duration:       %.1f s", float64(r.DurationMs)/1000),
		fmt.Sprintf("Kills:          %d", r.Kills),
		fmt.Sprintf("Best combo:     %d", r.MaxCombo),
	}
	if r.Mode == entity.ModeChase {
		lines = append(lines, fmt.Sprintf("Wave reached:   %d", r.Wave))
	}
	if s.best != nil {
		lines = append(lines, "", fmt.Sprintf("Best %s score: %d (%s)", r.Mode, s.best.Score, s.best.Grade))
		if r.Score >= s.best.Score && r.RoundID == s.best.RoundID {
			lines = append(lines, "NEW BEST!")
		}
	}
	return lines
}

// Draw renders the result (implements scene.Scene)
func (s *Results) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, float32(s.screenW), float32(s.screenH), colorBackground, false)

	face := basicfont.Face7x13
	lines := s.Lines()
	y := s.screenH/2 - len(lines)*lineHeight/2

	for i, line := range lines {
		c := colorText
		if i == 0 {
			c = colorTitle
		}
		x := (s.screenW - len(line)*face.Advance) / 2
		text.Draw(screen, line, face, x, y, c)
		y += lineHeight
	}

	hint := "Z/Space: Rematch | ESC: Quit"
	text.Draw(screen, hint, face, (s.screenW-len(hint)*face.Advance)/2, s.screenH-20, colorHint)
}
