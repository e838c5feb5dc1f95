package minigame

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"moneypath/internal/player"
)

// InvestmentOption is one vehicle in the ten-year simulation. AnnualReturn
// is the expected rate; Risk is the standard deviation of the noise around
// it.
type InvestmentOption struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	AnnualReturn float64 `json:"annual_return"`
	Risk         float64 `json:"risk"`
}

// InvestmentSim runs a hypothetical ten-year investment and shows the
// result. No real money moves; the engine grants its flat reward.
type InvestmentSim struct {
	Options []InvestmentOption
	Years   int
}

func NewInvestmentSim() *InvestmentSim {
	return &InvestmentSim{
		Options: []InvestmentOption{
			{ID: "savings", Name: "Savings Account", AnnualReturn: 0.015, Risk: 0.001},
			{ID: "bonds", Name: "Government Bonds", AnnualReturn: 0.035, Risk: 0.005},
			{ID: "index", Name: "Index Funds", AnnualReturn: 0.07, Risk: 0.15},
			{ID: "stocks", Name: "Individual Stocks", AnnualReturn: 0.08, Risk: 0.25},
		},
		Years: 10,
	}
}

func (g *InvestmentSim) ID() string    { return "investment_sim" }
func (g *InvestmentSim) Title() string { return "Investment Simulation" }
func (g *InvestmentSim) Description() string {
	return "See how ten years treat a hypothetical investment."
}

var investMinCash = decimal.NewFromInt(1000)

func (g *InvestmentSim) Available(st player.PlayerState) bool {
	return st.Cash.GreaterThanOrEqual(investMinCash)
}

func (g *InvestmentSim) Play(rng *rand.Rand, st player.PlayerState, req Request) (Outcome, error) {
	var opt *InvestmentOption
	for i := range g.Options {
		if g.Options[i].ID == req.OptionID {
			opt = &g.Options[i]
			break
		}
	}
	if opt == nil {
		return Outcome{}, fmt.Errorf("unknown investment option %q", req.OptionID)
	}

	amount := investMinCash
	if st.Cash.LessThan(amount) {
		amount = st.Cash
	}

	// Each year's return is the expected rate scaled by gaussian noise.
	value, _ := amount.Float64()
	for year := 0; year < g.Years; year++ {
		factor := 1 + rng.NormFloat64()*opt.Risk
		value *= 1 + opt.AnnualReturn*factor
	}
	final := decimal.NewFromFloat(value).Round(2)
	returnPct := final.Div(amount).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).Round(1)

	return Outcome{
		GameID: g.ID(),
		Won:    true,
		Lesson: LessonInvestmentBasics,
		Details: map[string]string{
			"option":           opt.Name,
			"invested":         amount.StringFixed(2),
			"final_value":      final.StringFixed(2),
			"total_return_pct": returnPct.StringFixed(1),
			"years":            fmt.Sprintf("%d", g.Years),
		},
	}, nil
}
