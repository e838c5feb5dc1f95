package minigame

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"moneypath/internal/player"
)

// Product is one comparison-shopping option. Prices are whole dollars.
type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	Quality       int    `json:"quality"`
	WarrantyYears int    `json:"warranty_years,omitempty"`
	MPG           int    `json:"mpg,omitempty"`
}

type ProductCategory struct {
	ID       string    `json:"id"`
	Products []Product `json:"products"`
}

// ComparisonShopping asks the player to pick the best value inside a budget
// of 30% of cash, capped at $1,000. Sometimes nothing fits, which is its own
// lesson.
type ComparisonShopping struct {
	Categories []ProductCategory
}

func NewComparisonShopping() *ComparisonShopping {
	return &ComparisonShopping{
		Categories: []ProductCategory{
			{
				ID: "laptop",
				Products: []Product{
					{ID: "budget_laptop", Name: "Budget Laptop", Price: 400, Quality: 6, WarrantyYears: 1},
					{ID: "midrange_laptop", Name: "Mid-range Laptop", Price: 700, Quality: 8, WarrantyYears: 2},
					{ID: "premium_laptop", Name: "Premium Laptop", Price: 1200, Quality: 9, WarrantyYears: 3},
				},
			},
			{
				ID: "phone",
				Products: []Product{
					{ID: "basic_phone", Name: "Basic Phone", Price: 200, Quality: 5, WarrantyYears: 1},
					{ID: "popular_phone", Name: "Popular Phone", Price: 600, Quality: 8, WarrantyYears: 2},
					{ID: "flagship_phone", Name: "Flagship Phone", Price: 1000, Quality: 9, WarrantyYears: 2},
				},
			},
			{
				ID: "car",
				Products: []Product{
					{ID: "used_compact", Name: "Used Compact Car", Price: 8000, Quality: 6, MPG: 35},
					{ID: "certified_preowned", Name: "Certified Pre-owned", Price: 15000, Quality: 8, MPG: 30},
					{ID: "new_car", Name: "New Car", Price: 25000, Quality: 9, MPG: 32},
				},
			},
		},
	}
}

func (g *ComparisonShopping) ID() string    { return "comparison_shopping" }
func (g *ComparisonShopping) Title() string { return "Comparison Shopping" }
func (g *ComparisonShopping) Description() string {
	return "Pick the best value for your money inside a fixed budget."
}

var comparisonMinCash = decimal.NewFromInt(500)

func (g *ComparisonShopping) Available(st player.PlayerState) bool {
	return st.Cash.GreaterThanOrEqual(comparisonMinCash)
}

// Budget is 30% of cash, capped at $1,000.
func (g *ComparisonShopping) Budget(st player.PlayerState) decimal.Decimal {
	budget := st.Cash.Mul(decimal.NewFromFloat(0.3)).Round(2)
	if limit := decimal.NewFromInt(1000); budget.GreaterThan(limit) {
		budget = limit
	}
	return budget
}

func (g *ComparisonShopping) category(rng *rand.Rand, id string) (ProductCategory, bool) {
	if id == "" {
		return g.Categories[rng.Intn(len(g.Categories))], true
	}
	for _, c := range g.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return ProductCategory{}, false
}

// Affordable lists the category's products inside the player's budget.
func (g *ComparisonShopping) Affordable(st player.PlayerState, categoryID string) []Product {
	budget := g.Budget(st)
	out := []Product{}
	for _, c := range g.Categories {
		if c.ID != categoryID {
			continue
		}
		for _, p := range c.Products {
			if decimal.NewFromInt(p.Price).LessThanOrEqual(budget) {
				out = append(out, p)
			}
		}
	}
	return out
}

func (g *ComparisonShopping) Play(rng *rand.Rand, st player.PlayerState, req Request) (Outcome, error) {
	cat, ok := g.category(rng, req.Category)
	if !ok {
		return Outcome{}, fmt.Errorf("unknown product category %q", req.Category)
	}

	budget := g.Budget(st)
	affordable := []Product{}
	for _, p := range cat.Products {
		if decimal.NewFromInt(p.Price).LessThanOrEqual(budget) {
			affordable = append(affordable, p)
		}
	}

	// Nothing in budget teaches saving for larger purchases.
	if len(affordable) == 0 {
		return Outcome{
			GameID: g.ID(),
			Won:    false,
			Lesson: LessonBudgetConstraint,
			Details: map[string]string{
				"category": cat.ID,
				"budget":   budget.StringFixed(2),
			},
		}, nil
	}

	var chosen *Product
	for i := range affordable {
		if affordable[i].ID == req.OptionID {
			chosen = &affordable[i]
			break
		}
	}
	if chosen == nil {
		return Outcome{}, fmt.Errorf("product %q is not an affordable option in %s", req.OptionID, cat.ID)
	}

	// Quality per thousand dollars decides the reward tier.
	value := float64(chosen.Quality) * 1000 / float64(chosen.Price)
	wellbeing := 1
	switch {
	case value >= 12:
		wellbeing = 5
	case value >= 9:
		wellbeing = 3
	}

	return Outcome{
		GameID:         g.ID(),
		Won:            true,
		Score:          int(value),
		CashDelta:      decimal.NewFromInt(-chosen.Price),
		WellbeingDelta: wellbeing,
		Lesson:         LessonComparisonShopping,
		Details: map[string]string{
			"category": cat.ID,
			"product":  chosen.Name,
			"budget":   budget.StringFixed(2),
		},
	}, nil
}
