package models

// WindDirection is the compass direction the wind blows from
type WindDirection string

const (
	WindN    WindDirection = "N"
	WindNE   WindDirection = "NE"
	WindE    WindDirection = "E"
	WindSE   WindDirection = "SE"
	WindS    WindDirection = "S"
	WindSW   WindDirection = "SW"
	WindW    WindDirection = "W"
	WindNW   WindDirection = "NW"
	WindCalm WindDirection = "calm"
)

// GroundConditions describes fairway moisture
type GroundConditions string

const (
	GroundDry   GroundConditions = "dry"
	GroundDamp  GroundConditions = "damp"
	GroundWet   GroundConditions = "wet"
	GroundMuddy GroundConditions = "muddy"
)

// IsWet reports whether the ground is damp, wet or muddy
func (g GroundConditions) IsWet() bool {
	return g == GroundDamp || g == GroundWet || g == GroundMuddy
}

// WeatherConditions are resolved conditions at the time of the shot
type WeatherConditions struct {
	TemperatureF     float64          `json:"temperature_fahrenheit" binding:"min=-50,max=150"`
	WindSpeedMPH     float64          `json:"wind_speed_mph" binding:"min=0,max=100"`
	WindDirection    WindDirection    `json:"wind_direction_compass" binding:"required,oneof=N NE E SE S SW W NW calm"`
	HumidityPercent  int              `json:"humidity_percent" binding:"min=0,max=100"`
	Rain             bool             `json:"rain"`
	GroundConditions GroundConditions `json:"ground_conditions" binding:"required,oneof=dry damp wet muddy"`
}

// ReferenceWeather returns the conditions baseline distances are measured in
func ReferenceWeather() WeatherConditions {
	return WeatherConditions{
		TemperatureF:     70,
		WindDirection:    WindCalm,
		GroundConditions: GroundDry,
	}
}

// PinLocation is where the pin is cut on the green
type PinLocation string

const (
	PinFront  PinLocation = "front"
	PinCenter PinLocation = "center"
	PinBack   PinLocation = "back"
)

// PlayerLie is where the ball is sitting
type PlayerLie string

const (
	LieTee       PlayerLie = "tee"
	LieFairway   PlayerLie = "fairway"
	LieSemiRough PlayerLie = "semi_rough"
	LieRough     PlayerLie = "rough"
	LieBunker    PlayerLie = "bunker"
	LieWoods     PlayerLie = "woods"
)

// LieQuality refines the lie
type LieQuality string

const (
	QualityClean   LieQuality = "clean"
	QualityNormal  LieQuality = "normal"
	QualityThick   LieQuality = "thick"
	QualityPlugged LieQuality = "plugged"
)

// WindRelative is the wind direction relative to the shot line
type WindRelative string

const (
	WindHeadwind       WindRelative = "headwind"
	WindTailwind       WindRelative = "tailwind"
	WindCrosswindLeft  WindRelative = "crosswind_left"
	WindCrosswindRight WindRelative = "crosswind_right"
	WindRelativeCalm   WindRelative = "calm"
)

// Label renders the wind for explanations ("crosswind left")
func (w WindRelative) Label() string {
	switch w {
	case WindCrosswindLeft:
		return "crosswind left"
	case WindCrosswindRight:
		return "crosswind right"
	default:
		return string(w)
	}
}

// Strategy is the player's stated appetite for risk on this shot
type Strategy string

const (
	StrategyAggressive   Strategy = "aggressive"
	StrategyBalanced     Strategy = "balanced"
	StrategyConservative Strategy = "conservative"
)

// ShotContext describes the shot the player is facing
type ShotContext struct {
	AnalysisID         string        `json:"analysis_id" binding:"max=50"`
	PlayerID           string        `json:"player_id" binding:"required,max=50"`
	HoleID             string        `json:"hole_id" binding:"max=50"`
	PinLocation        PinLocation   `json:"pin_location" binding:"required,oneof=front center back"`
	DistanceToPinYards int           `json:"current_distance_to_pin_yards" binding:"min=1,max=700"`
	Lie                PlayerLie     `json:"player_lie" binding:"required,oneof=tee fairway semi_rough rough bunker woods"`
	LieQuality         *LieQuality   `json:"lie_quality,omitempty" binding:"omitempty,oneof=clean normal thick plugged"`
	WindRelative       *WindRelative `json:"wind_relative_to_shot,omitempty" binding:"omitempty,oneof=headwind tailwind crosswind_left crosswind_right calm"`
	Strategy           *Strategy     `json:"pin_placement_strategy,omitempty" binding:"omitempty,oneof=aggressive balanced conservative"`
	Notes              string        `json:"notes,omitempty" binding:"max=1000"`
}

// StrategyOrDefault returns the stated strategy, or balanced when unset
func (s *ShotContext) StrategyOrDefault() Strategy {
	if s.Strategy == nil {
		return StrategyBalanced
	}
	return *s.Strategy
}

// RoundContext is the in-round scoring situation
type RoundContext struct {
	CurrentHole int   `json:"current_hole" binding:"min=1,max=18"`
	ScoreToPar  int   `json:"score_to_par"`
	LastScores  []int `json:"last_3_scores,omitempty" binding:"max=3"`
	LastPars    []int `json:"last_3_pars,omitempty" binding:"max=3"`
}

// LastHole returns the most recent hole's score and par, if known
func (r *RoundContext) LastHole() (score, par int, ok bool) {
	n := len(r.LastScores)
	if n == 0 || len(r.LastPars) < n {
		return 0, 0, false
	}
	return r.LastScores[n-1], r.LastPars[n-1], true
}
