package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/younwookim/bountyhunter/internal/application/scene"
)

// mockScene is a test double for Scene interface
type mockScene struct {
	updateCalled  int
	drawCalled    int
	onEnterCalled int
	onExitCalled  int
	lastDT        float64
	nextScene     scene.Scene
	updateErr     error
}

func (m *mockScene) Update(dt float64) (scene.Scene, error) {
	m.updateCalled++
	m.lastDT = dt
	return m.nextScene, m.updateErr
}

func (m *mockScene) Draw(*ebiten.Image) { m.drawCalled++ }
func (m *mockScene) OnEnter()           { m.onEnterCalled++ }
func (m *mockScene) OnExit()            { m.onExitCalled++ }

func TestNew(t *testing.T) {
	initial := &mockScene{}
	g := New(initial, 800, 600, 60)

	assert.NotNil(t, g)
	assert.Equal(t, 1, initial.onEnterCalled, "OnEnter should be called on initial scene")
	assert.Same(t, initial, g.Current())
}

func TestGame_FramerateSetsDT(t *testing.T) {
	tests := []struct {
		name      string
		framerate int
		expected  float64
	}{
		{"sixty", 60, 1.0 / 60},
		{"thirty", 30, 1.0 / 30},
		{"zero defaults", 0, 1.0 / 60},
		{"negative defaults", -5, 1.0 / 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &mockScene{}
			g := New(s, 800, 600, tt.framerate)
			assert.Equal(t, tt.expected, g.DT())

			assert.NoError(t, g.Update())
			assert.Equal(t, tt.expected, s.lastDT)
		})
	}
}

func TestGame_Draw_DelegatesToCurrentScene(t *testing.T) {
	initial := &mockScene{}
	g := New(initial, 320, 240, 60)

	img := ebiten.NewImage(320, 240)
	g.Draw(img)

	assert.Equal(t, 1, initial.drawCalled, "Draw should delegate to current scene")
}

func TestGame_Layout(t *testing.T) {
	g := New(&mockScene{}, 800, 600, 60)

	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestGame_SceneTransition(t *testing.T) {
	scene1 := &mockScene{}
	scene2 := &mockScene{}
	scene1.nextScene = scene2

	g := New(scene1, 320, 240, 60)
	assert.NoError(t, g.Update())

	assert.Equal(t, 1, scene1.updateCalled)
	assert.Equal(t, 1, scene1.onExitCalled, "scene1 OnExit called on transition")
	assert.Equal(t, 1, scene2.onEnterCalled, "scene2 OnEnter called on transition")

	assert.NoError(t, g.Update())
	assert.Equal(t, 1, scene2.updateCalled)
	assert.Same(t, scene2, g.Current())
}

func TestGame_NoTransitionWhenNil(t *testing.T) {
	scene1 := &mockScene{}
	g := New(scene1, 320, 240, 60)

	for i := 0; i < 5; i++ {
		assert.NoError(t, g.Update())
	}

	assert.Equal(t, 5, scene1.updateCalled)
	assert.Equal(t, 0, scene1.onExitCalled, "No OnExit when no transition")
}

func TestGame_UpdateErrorExitsScene(t *testing.T) {
	scene1 := &mockScene{updateErr: ebiten.Termination}
	g := New(scene1, 320, 240, 60)

	err := g.Update()
	assert.ErrorIs(t, err, ebiten.Termination)
	assert.Equal(t, 1, scene1.onExitCalled, "the scene is exited before terminating")
}
