package services

import (
	"fmt"
	"math"

	"stakemax/domain/entities"
	"stakemax/domain/interfaces"
)

type outcomeGenerator struct {
	rng interfaces.RandSource
}

// NewOutcomeGenerator creates an outcome generator drawing from the supplied
// random source
func NewOutcomeGenerator(rng interfaces.RandSource) interfaces.OutcomeGenerator {
	return &outcomeGenerator{rng: rng}
}

// Resolve draws one uniform value against the game's win chance. On a win a
// second draw picks the multiplier uniformly from [min, max); the payout is
// floor(stake * multiplier). On a loss the multiplier and payout are zero.
func (g *outcomeGenerator) Resolve(game entities.GameConfig, stake int64) (entities.Outcome, error) {
	if err := game.Validate(); err != nil {
		return entities.Outcome{}, fmt.Errorf("invalid game config %q: %w", game.Name, err)
	}
	if stake <= 0 {
		return entities.Outcome{}, entities.ErrInvalidStake
	}

	u := g.rng.Float64()
	if u >= game.WinChance {
		return entities.Outcome{
			Result: entities.BetResultLose,
			Change: -stake,
		}, nil
	}

	mult := game.MinMultiplier + g.rng.Float64()*(game.MaxMultiplier-game.MinMultiplier)
	payout := int64(math.Floor(float64(stake) * mult))

	return entities.Outcome{
		Result:     entities.BetResultWin,
		Multiplier: mult,
		Payout:     payout,
		Change:     payout - stake,
	}, nil
}
