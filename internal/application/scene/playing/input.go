package playing

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/bountyhunter/internal/application/system"
)

// readInput snapshots the keyboard and mouse for one tick.
// Jump, Fire, EagleEye and Click are edge-triggered.
func readInput() system.InputState {
	mx, my := ebiten.CursorPosition()

	return system.InputState{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),

		Jump:       inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Fire:       inpututil.IsKeyJustPressed(ebiten.KeyF) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		EagleEye:   inpututil.IsKeyJustPressed(ebiten.KeyE),
		SlowMotion: ebiten.IsKeyPressed(ebiten.KeyShift),

		PointerX: float64(mx),
		PointerY: float64(my),
		Click:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}
