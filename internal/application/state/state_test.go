package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundState_String(t *testing.T) {
	tests := []struct {
		state    RoundState
		expected string
	}{
		{StateIdle, "Idle"},
		{StateIntro, "Intro"},
		{StateActive, "Active"},
		{StateEnded, "Ended"},
		{RoundState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestRoundState_CanAdvanceTo(t *testing.T) {
	all := []RoundState{StateIdle, StateIntro, StateActive, StateEnded}
	allowed := map[[2]RoundState]bool{
		{StateIdle, StateIntro}:   true,
		{StateIntro, StateActive}: true,
		{StateActive, StateEnded}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]RoundState{from, to}]
			assert.Equal(t, want, from.CanAdvanceTo(to), "%s -> %s", from, to)
		}
	}
}

func TestRoundState_Terminal(t *testing.T) {
	assert.True(t, StateEnded.Terminal())
	assert.False(t, StateActive.Terminal())
}
