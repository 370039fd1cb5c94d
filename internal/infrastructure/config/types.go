package config

import "github.com/younwookim/bountyhunter/internal/domain/entity"

// GameConfig is the root config for game.json plus the files it references
type GameConfig struct {
	Display  DisplayConfig            `json:"display"`
	Physics  PhysicsSettings          `json:"physics"`
	Round    RoundConfig              `json:"round"`
	Duel     DuelConfig               `json:"duel"`
	Chase    ChaseConfig              `json:"chase"`
	Tracking TrackingConfig           `json:"tracking"`
	Scoring  map[string]ScoringConfig `json:"scoring"`

	// Loaded from difficulty.yaml
	Difficulty map[entity.Difficulty]entity.DifficultyProfile `json:"-"`
	// Loaded from arenas/<duel.arena>.tmx
	DuelArena *Arena `json:"-"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Framerate    int `json:"framerate"`
}

// PhysicsSettings configures the integrator. Units are pixels and seconds.
type PhysicsSettings struct {
	Gravity      float64 `json:"gravity"`
	MaxFallSpeed float64 `json:"maxFallSpeed"`
}

type RoundConfig struct {
	IntroSeconds float64 `json:"introSeconds"`
	AutoBegin    bool    `json:"autoBegin"`
}

// FighterConfig describes a character archetype
type FighterConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Health int     `json:"health"`
	Ammo   int     `json:"ammo"`
	Speed  float64 `json:"speed"`
}

type DuelConfig struct {
	Arena       string        `json:"arena"`
	Player      FighterConfig `json:"player"`
	Opponent    FighterConfig `json:"opponent"`
	JumpForce   float64       `json:"jumpForce"`
	BulletSpeed float64       `json:"bulletSpeed"`
	BulletSize  float64       `json:"bulletSize"`
	BulletTTL   float64       `json:"bulletTTL"`
	WinPoints   int           `json:"winPoints"`
	TimeLimit   float64       `json:"timeLimit"`
}

type ChaseConfig struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	ObstacleCount int     `json:"obstacleCount"`
	ObstacleSize  float64 `json:"obstacleSize"`

	Player      FighterConfig `json:"player"`
	MaxAmmo     int           `json:"maxAmmo"`
	AmmoPerWave int           `json:"ammoPerWave"`

	Enemy         FighterConfig `json:"enemy"`
	EnemySpeedMin float64       `json:"enemySpeedMin"`
	EnemySpeedMax float64       `json:"enemySpeedMax"`
	BaseEnemies   int           `json:"baseEnemies"`
	MaxEnemies    int           `json:"maxEnemies"`
	MaxWaves      int           `json:"maxWaves"`

	BulletSpeed       float64 `json:"bulletSpeed"`
	EnemyBulletSpeed  float64 `json:"enemyBulletSpeed"`
	BulletSize        float64 `json:"bulletSize"`
	BulletTTL         float64 `json:"bulletTTL"`
	BulletDamage      int     `json:"bulletDamage"`
	EnemyBulletDamage int     `json:"enemyBulletDamage"`
	ContactDamage     int     `json:"contactDamage"`
	FireRange         float64 `json:"fireRange"`
	FireCooldownMin   float64 `json:"fireCooldownMin"`
	FireCooldownMax   float64 `json:"fireCooldownMax"`

	KillPoints  int     `json:"killPoints"`
	WavePoints  int     `json:"wavePoints"`
	WaveDelay   float64 `json:"waveDelay"`
	MinWaveTime float64 `json:"minWaveTime"`
	TimeLimit   float64 `json:"timeLimit"`
}

// SpeciesConfig describes a huntable animal
type SpeciesConfig struct {
	Size   float64 `json:"size"`
	Speed  float64 `json:"speed"`
	Points int     `json:"points"`
	Health int     `json:"health"`
}

type EagleEyeConfig struct {
	Range    float64 `json:"range"`
	Duration float64 `json:"duration"`
	Cooldown float64 `json:"cooldown"`
	Points   int     `json:"points"`
}

type TrackingConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Player  FighterConfig            `json:"player"`
	Species map[string]SpeciesConfig `json:"species"`

	InitialAnimals  int     `json:"initialAnimals"`
	MaxAnimals      int     `json:"maxAnimals"`
	SpawnInterval   float64 `json:"spawnInterval"`
	WanderInterval  float64 `json:"wanderInterval"`
	EdgeMargin      float64 `json:"edgeMargin"`
	KillGoal        int     `json:"killGoal"`
	ShotRadius      float64 `json:"shotRadius"`
	ProximityMargin float64 `json:"proximityMargin"`
	ProximityDamage int     `json:"proximityDamage"`
	SlowMotion      float64 `json:"slowMotion"`
	TrackInterval   float64 `json:"trackInterval"`
	TimeLimit       float64 `json:"timeLimit"`

	EagleEye EagleEyeConfig `json:"eagleEye"`
}

// ScoringConfig holds the per-mode final score coefficients
type ScoringConfig struct {
	WinBonus           float64 `json:"winBonus"`
	ParTime            float64 `json:"parTime"`
	TimeBonusPerSecond float64 `json:"timeBonusPerSecond"`
	AccuracyWeight     float64 `json:"accuracyWeight"`
	AmmoBonus          float64 `json:"ammoBonus"`
	ComboBonus         float64 `json:"comboBonus"`

	ConsolationPerShot  float64 `json:"consolationPerShot"`
	ConsolationAccuracy float64 `json:"consolationAccuracy"`
	ConsolationShare    float64 `json:"consolationShare"`

	ReactionFloorMs  float64 `json:"reactionFloorMs"`
	ReactionCeilMs   float64 `json:"reactionCeilMs"`
	LossPenaltyMs    float64 `json:"lossPenaltyMs"`
	StrategyScoreCap float64 `json:"strategyScoreCap"`
}

// Arena is a duel map loaded from TMX
type Arena struct {
	Name      string
	Width     float64
	Height    float64
	Obstacles []entity.Rect
	Spawns    map[string]entity.Point
}

// Bounds returns the arena rectangle
func (a *Arena) Bounds() entity.Rect {
	return entity.Rect{W: a.Width, H: a.Height}
}
