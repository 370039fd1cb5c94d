package config

import "github.com/younwookim/bountyhunter/internal/domain/entity"

// Default returns a complete configuration matching cmd/game/configs.
// Used when no config directory is available and by tests.
func Default() *GameConfig {
	return &GameConfig{
		Display: DisplayConfig{ScreenWidth: 800, ScreenHeight: 600, Framerate: 60},
		Physics: PhysicsSettings{Gravity: 1200, MaxFallSpeed: 900},
		Round:   RoundConfig{IntroSeconds: 3, AutoBegin: true},
		Duel: DuelConfig{
			Arena:       "duel",
			Player:      FighterConfig{Width: 20, Height: 40, Health: 100, Ammo: 10, Speed: 200},
			Opponent:    FighterConfig{Width: 20, Height: 40, Health: 100, Ammo: 10, Speed: 150},
			JumpForce:   400,
			BulletSpeed: 600,
			BulletSize:  6,
			BulletTTL:   2,
			WinPoints:   1000,
			TimeLimit:   90,
		},
		Chase: ChaseConfig{
			Width:             800,
			Height:            600,
			ObstacleCount:     8,
			ObstacleSize:      40,
			Player:            FighterConfig{Width: 30, Height: 30, Health: 100, Ammo: 20, Speed: 300},
			MaxAmmo:           50,
			AmmoPerWave:       10,
			Enemy:             FighterConfig{Width: 25, Height: 25, Health: 30, Ammo: entity.UnlimitedAmmo, Speed: 150},
			EnemySpeedMin:     120,
			EnemySpeedMax:     240,
			BaseEnemies:       3,
			MaxEnemies:        8,
			MaxWaves:          5,
			BulletSpeed:       480,
			EnemyBulletSpeed:  360,
			BulletSize:        6,
			BulletTTL:         3,
			BulletDamage:      15,
			EnemyBulletDamage: 10,
			ContactDamage:     1,
			FireRange:         200,
			FireCooldownMin:   1.0,
			FireCooldownMax:   2.5,
			KillPoints:        100,
			WavePoints:        200,
			WaveDelay:         2,
			MinWaveTime:       1,
			TimeLimit:         300,
		},
		Tracking: TrackingConfig{
			Width:  800,
			Height: 600,
			Player: FighterConfig{Width: 20, Height: 20, Health: 100, Ammo: entity.UnlimitedAmmo, Speed: 180},
			Species: map[string]SpeciesConfig{
				"bear":  {Size: 50, Speed: 60, Points: 50, Health: 3},
				"lion":  {Size: 45, Speed: 120, Points: 40, Health: 2},
				"tiger": {Size: 40, Speed: 150, Points: 35, Health: 2},
				"wolf":  {Size: 35, Speed: 180, Points: 30, Health: 2},
				"deer":  {Size: 40, Speed: 240, Points: 20, Health: 1},
			},
			InitialAnimals:  3,
			MaxAnimals:      5,
			SpawnInterval:   5,
			WanderInterval:  2,
			EdgeMargin:      50,
			KillGoal:        10,
			ShotRadius:      20,
			ProximityMargin: 10,
			ProximityDamage: 1,
			SlowMotion:      0.3,
			TrackInterval:   1,
			TimeLimit:       300,
			EagleEye:        EagleEyeConfig{Range: 200, Duration: 3, Cooldown: 10, Points: 10},
		},
		Scoring: map[string]ScoringConfig{
			string(entity.ModeDuel): {
				WinBonus: 500, ParTime: 30, TimeBonusPerSecond: 10, AccuracyWeight: 3, AmmoBonus: 20,
				ConsolationPerShot: 10, ConsolationAccuracy: 1,
				ReactionFloorMs: 150, ReactionCeilMs: 3000, LossPenaltyMs: 200, StrategyScoreCap: 2000,
			},
			string(entity.ModeChase): {
				WinBonus: 500, ParTime: 120, TimeBonusPerSecond: 5, AccuracyWeight: 3, AmmoBonus: 10, ComboBonus: 25,
				ConsolationPerShot: 2, ConsolationAccuracy: 1, ConsolationShare: 0.5,
				ReactionFloorMs: 150, ReactionCeilMs: 5000, LossPenaltyMs: 300, StrategyScoreCap: 4000,
			},
			string(entity.ModeTracking): {
				WinBonus: 300, ParTime: 120, TimeBonusPerSecond: 2, AccuracyWeight: 2, ComboBonus: 10,
				ConsolationPerShot: 1, ConsolationAccuracy: 1, ConsolationShare: 0.5,
				ReactionFloorMs: 200, ReactionCeilMs: 30000, LossPenaltyMs: 500, StrategyScoreCap: 1000,
			},
		},
		Difficulty: entity.DefaultProfiles(),
		DuelArena:  DefaultArena(),
	}
}

// DefaultArena mirrors arenas/duel.tmx
func DefaultArena() *Arena {
	return &Arena{
		Name:   "duel",
		Width:  800,
		Height: 480,
		Obstacles: []entity.Rect{
			{X: 0, Y: 440, W: 800, H: 40},
			{X: 192, Y: 380, W: 16, H: 60},
			{X: 392, Y: 380, W: 16, H: 60},
			{X: 592, Y: 380, W: 16, H: 60},
			{X: 96, Y: 330, W: 128, H: 12},
			{X: 336, Y: 290, W: 128, H: 12},
			{X: 576, Y: 330, W: 128, H: 12},
		},
		Spawns: map[string]entity.Point{
			"player":   {X: 100, Y: 400},
			"opponent": {X: 680, Y: 400},
		},
	}
}
