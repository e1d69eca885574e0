package strategy

import "github.com/stitts-dev/smart-caddie/internal/models"

// Momentum classifies the player's recent scoring trend
type Momentum string

const (
	MomentumHot    Momentum = "hot"
	MomentumSteady Momentum = "steady"
	MomentumCold   Momentum = "cold"
)

// RoundPhase is the stage of the round
type RoundPhase string

const (
	PhaseEarly   RoundPhase = "early"
	PhaseMiddle  RoundPhase = "middle"
	PhaseClosing RoundPhase = "closing"
)

// Bias is the strategy adjustment suggested by the round situation
type Bias string

const (
	BiasConservative Bias = "conservative"
	BiasStandard     Bias = "standard"
	BiasAggressive   Bias = "aggressive"
)

// Situation is the full read of the round for the current hole
type Situation struct {
	Momentum      Momentum              `json:"momentum"`
	Phase         RoundPhase            `json:"round_phase"`
	Bias          Bias                  `json:"strategy_bias"`
	BiasMagnitude float64               `json:"bias_magnitude"`
	Difficulty    models.HoleDifficulty `json:"hole_difficulty"`
	ScoreToPar    int                   `json:"score_to_par"`
	CaddieNote    string                `json:"caddie_note"`
}

// CalculateMomentum reads the last three holes. A double bogey or worse
// always makes the player cold; two birdies or a -0.5 average makes them hot.
func CalculateMomentum(lastScores, lastPars []int) Momentum {
	if len(lastScores) < 3 || len(lastPars) < 3 {
		return MomentumSteady
	}

	scores := lastScores[len(lastScores)-3:]
	pars := lastPars[len(lastPars)-3:]

	var total, birdies int
	blowup := false
	for i := range scores {
		rel := scores[i] - pars[i]
		total += rel
		if rel >= 2 {
			blowup = true
		}
		if rel < 0 {
			birdies++
		}
	}
	average := float64(total) / 3.0

	switch {
	case blowup:
		return MomentumCold
	case birdies >= 2 || average <= -0.5:
		return MomentumHot
	case average < 1.0:
		return MomentumSteady
	default:
		return MomentumCold
	}
}

// RoundPhaseFor maps a hole number to its phase
func RoundPhaseFor(holeNumber int) RoundPhase {
	switch {
	case holeNumber <= 6:
		return PhaseEarly
	case holeNumber <= 12:
		return PhaseMiddle
	default:
		return PhaseClosing
	}
}

// StrategyAdjustment is the fixed decision table turning the round situation
// into a bias and its strength (0-1)
func StrategyAdjustment(momentum Momentum, phase RoundPhase, scoreToPar int, difficulty models.HoleDifficulty) (Bias, float64) {
	if momentum == MomentumCold {
		return BiasConservative, 0.8
	}

	if momentum == MomentumHot {
		if phase == PhaseClosing {
			return BiasStandard, 0.5
		}
		return BiasAggressive, 0.6
	}

	if phase == PhaseClosing && scoreToPar <= 0 {
		return BiasConservative, 0.7
	}

	if phase == PhaseClosing && scoreToPar > 3 {
		if difficulty == models.DifficultyEasy {
			return BiasAggressive, 0.8
		}
		return BiasStandard, 0.5
	}

	return BiasStandard, 0.5
}

// ShouldOverrideStrategy reports whether the round situation is strong enough
// to override the player's stated preference. Only a cold streak does.
func ShouldOverrideStrategy(momentum Momentum, bias Bias) bool {
	return momentum == MomentumCold && bias == BiasConservative
}

// EffectiveStrategy resolves the strategy used for ranking from the player's
// stated preference and the round bias. An unset preference follows the bias.
func EffectiveStrategy(stated *models.Strategy, situation *Situation) models.Strategy {
	if situation == nil {
		if stated == nil {
			return models.StrategyBalanced
		}
		return *stated
	}

	if ShouldOverrideStrategy(situation.Momentum, situation.Bias) {
		return models.StrategyConservative
	}
	if stated != nil {
		return *stated
	}

	switch situation.Bias {
	case BiasConservative:
		return models.StrategyConservative
	case BiasAggressive:
		return models.StrategyAggressive
	default:
		return models.StrategyBalanced
	}
}

// NoteInput carries the signals the caddie note templates key off
type NoteInput struct {
	Momentum      Momentum
	Phase         RoundPhase
	ScoreToPar    int
	LastHoleScore int
	LastHolePar   int
	HolePar       int
	Difficulty    models.HoleDifficulty
}

// CaddieNote picks a deterministic situational note
func CaddieNote(in NoteInput) string {
	if in.LastHoleScore >= in.LastHolePar+2 {
		return "Let's just find the fairway here and give ourselves a look. Shake off that last one."
	}

	if in.Momentum == MomentumHot {
		if in.Difficulty == models.DifficultyEasy {
			if in.HolePar == 3 {
				return "Good number here. This is a birdie hole for you, let's be aggressive to the pin."
			}
			return "You're swinging well. Trust your line and be aggressive."
		}
		return "Stay patient. You're playing great golf."
	}

	if in.Phase == PhaseClosing && in.ScoreToPar <= 0 {
		if in.Difficulty == models.DifficultyEasy {
			return "Smart play here. Let's take what the hole gives us."
		}
		return "Conservative is smart. Protect your score."
	}

	if in.Phase == PhaseClosing && in.ScoreToPar > 3 {
		if in.Difficulty == models.DifficultyEasy {
			return "We need this one. Birdie opportunity, let's attack it."
		}
		return "Stay aggressive but smart. Par is fine here."
	}

	if in.Phase == PhaseEarly && in.LastHoleScore == in.LastHolePar+1 {
		return "Plenty of golf left. Let's get that shot back."
	}

	return DefaultCaddieNote(in.HolePar)
}

// DefaultCaddieNote is the par-based note used without round context
func DefaultCaddieNote(par int) string {
	switch par {
	case 3:
		return "Good par 3. Trust your distance."
	case 5:
		return "Scoring hole. Let's make birdie."
	default:
		return "Fairway first, then we'll go at the pin."
	}
}

// Analyze reads the round for the given hole. It returns nil without round context.
func Analyze(rc *models.RoundContext, hole *models.Hole) *Situation {
	if rc == nil {
		return nil
	}

	momentum := CalculateMomentum(rc.LastScores, rc.LastPars)
	phase := RoundPhaseFor(rc.CurrentHole)
	difficulty := hole.Difficulty()
	bias, magnitude := StrategyAdjustment(momentum, phase, rc.ScoreToPar, difficulty)

	lastScore, lastPar, ok := rc.LastHole()
	if !ok {
		lastScore, lastPar = hole.Par, hole.Par
	}

	return &Situation{
		Momentum:      momentum,
		Phase:         phase,
		Bias:          bias,
		BiasMagnitude: magnitude,
		Difficulty:    difficulty,
		ScoreToPar:    rc.ScoreToPar,
		CaddieNote: CaddieNote(NoteInput{
			Momentum:      momentum,
			Phase:         phase,
			ScoreToPar:    rc.ScoreToPar,
			LastHoleScore: lastScore,
			LastHolePar:   lastPar,
			HolePar:       hole.Par,
			Difficulty:    difficulty,
		}),
	}
}
