package config

// Balance holds simulation tuning configuration. Monetary values are plain
// floats here because they are human-edited; the engine converts them to
// decimals at the boundary.
type Balance struct {
	// Starting character values
	StartingCash        float64 `json:"starting_cash" yaml:"starting_cash" env:"MONEYPATH_STARTING_CASH"`
	StartingCreditScore int     `json:"starting_credit_score" yaml:"starting_credit_score" env:"MONEYPATH_STARTING_CREDIT_SCORE"`
	StartingWellbeing   int     `json:"starting_wellbeing" yaml:"starting_wellbeing" env:"MONEYPATH_STARTING_WELLBEING"`
	StartingAge         int     `json:"starting_age" yaml:"starting_age" env:"MONEYPATH_STARTING_AGE"`
	StartingAcademics   int     `json:"starting_academics" yaml:"starting_academics" env:"MONEYPATH_STARTING_ACADEMICS"`

	// Debt service
	MonthlyInterestRate float64 `json:"monthly_interest_rate" yaml:"monthly_interest_rate" env:"MONEYPATH_MONTHLY_INTEREST_RATE"`
	MinPaymentRate      float64 `json:"min_payment_rate" yaml:"min_payment_rate" env:"MONEYPATH_MIN_PAYMENT_RATE"`
	MinPaymentFloor     float64 `json:"min_payment_floor" yaml:"min_payment_floor" env:"MONEYPATH_MIN_PAYMENT_FLOOR"`

	// Penalties
	MissedPaymentScorePenalty    int `json:"missed_payment_score_penalty" yaml:"missed_payment_score_penalty" env:"MONEYPATH_MISSED_PAYMENT_SCORE_PENALTY"`
	NegativeCashScorePenalty     int `json:"negative_cash_score_penalty" yaml:"negative_cash_score_penalty" env:"MONEYPATH_NEGATIVE_CASH_SCORE_PENALTY"`
	NegativeCashWellbeingPenalty int `json:"negative_cash_wellbeing_penalty" yaml:"negative_cash_wellbeing_penalty" env:"MONEYPATH_NEGATIVE_CASH_WELLBEING_PENALTY"`

	// Overdraft floor for explicit debits outside the monthly flow.
	// Scripted monthly expenses may pass it; player-initiated spends may not.
	OverdraftFloor float64 `json:"overdraft_floor" yaml:"overdraft_floor" env:"MONEYPATH_OVERDRAFT_FLOOR"`

	// Assets
	AssetDecayPerMonth  int     `json:"asset_decay_per_month" yaml:"asset_decay_per_month" env:"MONEYPATH_ASSET_DECAY_PER_MONTH"`
	RepairThreshold     int     `json:"repair_threshold" yaml:"repair_threshold" env:"MONEYPATH_REPAIR_THRESHOLD"`
	RepairCostPerPoint  float64 `json:"repair_cost_per_point" yaml:"repair_cost_per_point" env:"MONEYPATH_REPAIR_COST_PER_POINT"`
	VehicleSalvageFloor float64 `json:"vehicle_salvage_floor" yaml:"vehicle_salvage_floor" env:"MONEYPATH_VEHICLE_SALVAGE_FLOOR"`
	VehicleSalvageRate  float64 `json:"vehicle_salvage_rate" yaml:"vehicle_salvage_rate" env:"MONEYPATH_VEHICLE_SALVAGE_RATE"`

	// Random events
	EventChance float64 `json:"event_chance" yaml:"event_chance" env:"MONEYPATH_EVENT_CHANCE"`

	// Dual work/study
	SideJobWellbeingCost    int `json:"side_job_wellbeing_cost" yaml:"side_job_wellbeing_cost" env:"MONEYPATH_SIDE_JOB_WELLBEING_COST"`
	SideJobAcademicsPenalty int `json:"side_job_academics_penalty" yaml:"side_job_academics_penalty" env:"MONEYPATH_SIDE_JOB_ACADEMICS_PENALTY"`

	// Budget decisions
	BudgetSavingsBonusPct int `json:"budget_savings_bonus_pct" yaml:"budget_savings_bonus_pct" env:"MONEYPATH_BUDGET_SAVINGS_BONUS_PCT"`
	BudgetWellbeingBonus  int `json:"budget_wellbeing_bonus" yaml:"budget_wellbeing_bonus" env:"MONEYPATH_BUDGET_WELLBEING_BONUS"`

	// Minigames
	MinigameWellbeingReward int `json:"minigame_wellbeing_reward" yaml:"minigame_wellbeing_reward" env:"MONEYPATH_MINIGAME_WELLBEING_REWARD"`
}

// Default returns the default balance configuration.
func Default() Balance {
	return Balance{
		StartingCash:        1000,
		StartingCreditScore: 650,
		StartingWellbeing:   50,
		StartingAge:         18,
		StartingAcademics:   75,

		MonthlyInterestRate: 0.004, // 4.8% APR
		MinPaymentRate:      0.02,
		MinPaymentFloor:     25,

		MissedPaymentScorePenalty:    30,
		NegativeCashScorePenalty:     10,
		NegativeCashWellbeingPenalty: 5,

		OverdraftFloor: -500,

		AssetDecayPerMonth:  2,
		RepairThreshold:     30,
		RepairCostPerPoint:  5,
		VehicleSalvageFloor: 1000,
		VehicleSalvageRate:  0.30,

		EventChance: 0.10,

		SideJobWellbeingCost:    5,
		SideJobAcademicsPenalty: 3,

		BudgetSavingsBonusPct: 20,
		BudgetWellbeingBonus:  2,

		MinigameWellbeingReward: 3,
	}
}

// Casual returns a gentler balance for younger players.
func Casual() Balance {
	cfg := Default()
	cfg.StartingCash = 2000
	cfg.MissedPaymentScorePenalty = 20
	cfg.NegativeCashScorePenalty = 5
	cfg.NegativeCashWellbeingPenalty = 3
	cfg.AssetDecayPerMonth = 1
	cfg.EventChance = 0.05
	return cfg
}

// Hard returns a tighter balance for experienced players.
func Hard() Balance {
	cfg := Default()
	cfg.StartingCash = 500
	cfg.MonthlyInterestRate = 0.0085
	cfg.MinPaymentRate = 0.03
	cfg.MissedPaymentScorePenalty = 45
	cfg.NegativeCashScorePenalty = 15
	cfg.NegativeCashWellbeingPenalty = 8
	cfg.AssetDecayPerMonth = 3
	cfg.EventChance = 0.15
	return cfg
}
