package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_String(t *testing.T) {
	assert.Equal(t, "player", RolePlayer.String())
	assert.Equal(t, "opponent", RoleOpponent.String())
	assert.Equal(t, "unknown", Role(9).String())
	assert.Equal(t, RoleOpponent, RolePlayer.Opposite())
	assert.Equal(t, RolePlayer, RoleOpponent.Opposite())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"duel", ModeDuel, false},
		{"chase", ModeChase, false},
		{"tracking", ModeTracking, false},
		{"hunt", ModeTracking, false},
		{"racing", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHitKind_String(t *testing.T) {
	assert.Equal(t, "character", HitCharacter.String())
	assert.Equal(t, "obstacle", HitObstacle.String())
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		perf float64
		want Grade
	}{
		{95, GradeS},
		{90, GradeS},
		{85, GradeA},
		{70, GradeB},
		{55, GradeC},
		{35, GradeD},
		{10, GradeF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFor(tt.perf), "perf=%v", tt.perf)
	}
}

func TestOutcome_Text(t *testing.T) {
	for _, o := range []Outcome{OutcomeWin, OutcomeLoss, OutcomeTimeout} {
		b, err := o.MarshalText()
		require.NoError(t, err)

		var back Outcome
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, o, back)
	}
}
