package config

import (
	"errors"
	"fmt"
	"time"
)

// Play field - the visible window in simulation units.
const (
	FieldWidth  = 800.0
	FieldHeight = 800.0
)

// Spawning
const (
	InitialSpawnPeriod = 1 * time.Second
	RateIncreaseEvery  = 15 * time.Second
	SpawnPeriodFactor  = 0.8
	MinSpawnPeriod     = time.Millisecond // Floor for the shrinking spawn period
	SpawnMargin        = 25.0             // Distance outside the field where asteroids appear
	AsteroidSpeedMin   = 1.0
	AsteroidSpeedMax   = 8.0
	AsteroidSpinMax    = 0.1 // Radians per tick, either direction
)

// Hit-boxes (full width/height)
const (
	PlayerHitWidth   = 32.0
	PlayerHitHeight  = 48.0
	AsteroidLarge    = 48.0
	AsteroidSmall    = 32.0
	ProjectileScale  = 0.3
	OutOfBoundsRange = 50.0 // Entities further than this outside the field are removed
)

// Player
const (
	InitialLives    = 3
	RespawnDuration = 5 * time.Second
	LaserSpeed      = 10.0
	InvincibleAlpha = 0.3
)

// Driver
const (
	TickRate = 60
)

// Settings holds every tunable of a game. The zero value is not usable;
// start from Default or FromEnv.
type Settings struct {
	FieldWidth  float64
	FieldHeight float64

	InitialSpawnPeriod time.Duration
	RateIncreaseEvery  time.Duration
	SpawnPeriodFactor  float64
	MinSpawnPeriod     time.Duration
	SpawnMargin        float64
	AsteroidSpeedMin   float64
	AsteroidSpeedMax   float64
	AsteroidSpinMax    float64

	PlayerHitWidth   float64
	PlayerHitHeight  float64
	AsteroidLarge    float64
	AsteroidSmall    float64
	ProjectileScale  float64
	OutOfBoundsRange float64

	Lives           int
	RespawnDuration time.Duration
	LaserSpeed      float64

	TickRate int
	Seed     uint64 // 0 picks a seed from the clock
}

// Default returns the stock game settings.
func Default() Settings {
	return Settings{
		FieldWidth:         FieldWidth,
		FieldHeight:        FieldHeight,
		InitialSpawnPeriod: InitialSpawnPeriod,
		RateIncreaseEvery:  RateIncreaseEvery,
		SpawnPeriodFactor:  SpawnPeriodFactor,
		MinSpawnPeriod:     MinSpawnPeriod,
		SpawnMargin:        SpawnMargin,
		AsteroidSpeedMin:   AsteroidSpeedMin,
		AsteroidSpeedMax:   AsteroidSpeedMax,
		AsteroidSpinMax:    AsteroidSpinMax,
		PlayerHitWidth:     PlayerHitWidth,
		PlayerHitHeight:    PlayerHitHeight,
		AsteroidLarge:      AsteroidLarge,
		AsteroidSmall:      AsteroidSmall,
		ProjectileScale:    ProjectileScale,
		OutOfBoundsRange:   OutOfBoundsRange,
		Lives:              InitialLives,
		RespawnDuration:    RespawnDuration,
		LaserSpeed:         LaserSpeed,
		TickRate:           TickRate,
	}
}

// FromEnv returns Default overlaid with any STROIDS_* environment variables.
func FromEnv() Settings {
	s := Default()
	s.FieldWidth = GetEnvFloat("STROIDS_FIELD_WIDTH", s.FieldWidth)
	s.FieldHeight = GetEnvFloat("STROIDS_FIELD_HEIGHT", s.FieldHeight)
	s.InitialSpawnPeriod = GetEnvDuration("STROIDS_SPAWN_PERIOD", s.InitialSpawnPeriod)
	s.RateIncreaseEvery = GetEnvDuration("STROIDS_RATE_INCREASE_EVERY", s.RateIncreaseEvery)
	s.SpawnPeriodFactor = GetEnvFloat("STROIDS_SPAWN_FACTOR", s.SpawnPeriodFactor)
	s.MinSpawnPeriod = GetEnvDuration("STROIDS_MIN_SPAWN_PERIOD", s.MinSpawnPeriod)
	s.Lives = GetEnvInt("STROIDS_LIVES", s.Lives)
	s.RespawnDuration = GetEnvDuration("STROIDS_RESPAWN", s.RespawnDuration)
	s.LaserSpeed = GetEnvFloat("STROIDS_LASER_SPEED", s.LaserSpeed)
	s.TickRate = GetEnvInt("STROIDS_TICK_RATE", s.TickRate)
	s.Seed = GetEnvUint64("STROIDS_SEED", s.Seed)
	return s
}

var errInvalid = errors.New("invalid settings")

// Validate reports the first nonsensical value in s.
func (s Settings) Validate() error {
	switch {
	case s.FieldWidth <= 0 || s.FieldHeight <= 0:
		return fmt.Errorf("%w: field %.0fx%.0f", errInvalid, s.FieldWidth, s.FieldHeight)
	case s.InitialSpawnPeriod <= 0 || s.RateIncreaseEvery <= 0:
		return fmt.Errorf("%w: spawn periods must be positive", errInvalid)
	case s.SpawnPeriodFactor <= 0 || s.SpawnPeriodFactor >= 1:
		return fmt.Errorf("%w: spawn factor %v not in (0,1)", errInvalid, s.SpawnPeriodFactor)
	case s.MinSpawnPeriod <= 0:
		return fmt.Errorf("%w: spawn period floor must be positive", errInvalid)
	case s.AsteroidSpeedMin <= 0 || s.AsteroidSpeedMax <= s.AsteroidSpeedMin:
		return fmt.Errorf("%w: asteroid speed range [%v,%v)", errInvalid, s.AsteroidSpeedMin, s.AsteroidSpeedMax)
	case s.Lives < 1 || s.Lives > 255:
		return fmt.Errorf("%w: lives %d", errInvalid, s.Lives)
	case s.RespawnDuration <= 0:
		return fmt.Errorf("%w: respawn duration must be positive", errInvalid)
	case s.LaserSpeed <= 0:
		return fmt.Errorf("%w: laser speed %v", errInvalid, s.LaserSpeed)
	case s.ProjectileScale <= 0 || s.AsteroidLarge <= 0 || s.AsteroidSmall <= 0:
		return fmt.Errorf("%w: entity sizes must be positive", errInvalid)
	case s.OutOfBoundsRange <= 0:
		return fmt.Errorf("%w: out-of-bounds range %v", errInvalid, s.OutOfBoundsRange)
	case s.TickRate <= 0:
		return fmt.Errorf("%w: tick rate %d", errInvalid, s.TickRate)
	}
	return nil
}

// IsInvalid reports whether err came from Validate.
func IsInvalid(err error) bool {
	return errors.Is(err, errInvalid)
}
