package entities

import "errors"

// GameConfig describes the odds of a named game. Configurations are immutable
// and loaded at process start from the registry below.
type GameConfig struct {
	Name          string
	WinChance     float64 // probability of a win, in (0,1]
	MinMultiplier float64
	MaxMultiplier float64
}

// Validate performs basic validation on a game configuration
func (g GameConfig) Validate() error {
	if g.WinChance <= 0 || g.WinChance > 1 {
		return errors.New("win chance must be between 0 and 1")
	}
	if g.MinMultiplier < 0 {
		return errors.New("min multiplier cannot be negative")
	}
	if g.MaxMultiplier < g.MinMultiplier {
		return errors.New("max multiplier cannot be less than min multiplier")
	}
	return nil
}

// defaultGame is the fallback configuration for unrecognized game names
var defaultGame = GameConfig{
	Name:          "Default",
	WinChance:     0.45,
	MinMultiplier: 1,
	MaxMultiplier: 3,
}

// gameRegistry holds the fixed set of named game configurations
var gameRegistry = map[string]GameConfig{
	"Slots":     {Name: "Slots", WinChance: 0.35, MinMultiplier: 1, MaxMultiplier: 6},
	"Blackjack": {Name: "Blackjack", WinChance: 0.48, MinMultiplier: 1.25, MaxMultiplier: 1.95},
	"Roulette":  {Name: "Roulette", WinChance: 0.47, MinMultiplier: 1.5, MaxMultiplier: 36},
	"Poker":     {Name: "Poker", WinChance: 0.40, MinMultiplier: 1.5, MaxMultiplier: 10},
	"Dice":      {Name: "Dice", WinChance: 0.5, MinMultiplier: 1, MaxMultiplier: 4},
	"Crash":     {Name: "Crash", WinChance: 0.6, MinMultiplier: 1.1, MaxMultiplier: 10},
}

// LookupGame returns the configuration for a game name, falling back to the
// default configuration for unrecognized names.
func LookupGame(name string) GameConfig {
	if g, ok := gameRegistry[name]; ok {
		return g
	}
	return defaultGame
}

// GameNames returns the names of all registered games
func GameNames() []string {
	names := make([]string, 0, len(gameRegistry))
	for name := range gameRegistry {
		names = append(names, name)
	}
	return names
}
