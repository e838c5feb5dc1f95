// Package player holds the financial state for one player: the ledger the
// simulation mutates, its invariants, and its persistence.
package player

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvariantViolation = errors.New("player state invariant violated")
)

const (
	CreditScoreMin = 300
	CreditScoreMax = 850
	WellbeingMin   = 0
	WellbeingMax   = 100
	AcademicsMin   = 0
	AcademicsMax   = 100
	MaxGoals       = 3
)

type EmploymentKind string

const (
	KindEducation EmploymentKind = "education"
	KindJob       EmploymentKind = "job"
	KindCareer    EmploymentKind = "career"
)

const AssetVehicle = "vehicle"

// Pending decision kinds recorded on the state when a batch halts.
const (
	PendingEvent  = "event"
	PendingRepair = "repair"
)

// PlayerState is the sole mutable entity of the simulation. All money fields
// are decimals; NetWorth is derived and recomputed by every mutator.
type PlayerState struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Month    int `json:"month"`
	AgeYears int `json:"age_years"`

	Cash    decimal.Decimal `json:"cash"`
	Debt    decimal.Decimal `json:"debt"`
	Savings decimal.Decimal `json:"savings"`

	CreditScore int `json:"credit_score"`
	Wellbeing   int `json:"wellbeing"`
	Academics   int `json:"academics"`

	NetWorth decimal.Decimal `json:"net_worth"`

	PathID       string   `json:"path_id"`
	Goals        []string `json:"goals,omitempty"`
	Achievements []string `json:"achievements,omitempty"`

	Assets     []Asset     `json:"assets,omitempty"`
	Employment *Employment `json:"employment,omitempty"`
	SideJob    *SideJob    `json:"side_job,omitempty"`

	Budget  *BudgetAllocation `json:"budget,omitempty"`
	Pending *PendingDecision  `json:"pending,omitempty"`

	// ResumeMonths holds the remainder of an interrupted advance batch after
	// its pending decision is resolved, so the follow-up advance may request
	// exactly that many months.
	ResumeMonths int `json:"resume_months,omitempty"`

	MissedPayments int `json:"missed_payments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Asset is an owned item with a wearing condition (0..100).
type Asset struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Name          string          `json:"name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Condition     int             `json:"condition"`
	NeedsRepair   bool            `json:"needs_repair,omitempty"`
}

type Employment struct {
	Kind           EmploymentKind  `json:"kind"`
	Title          string          `json:"title"`
	IncomePerMonth decimal.Decimal `json:"income_per_month"`
	SkillTags      []string        `json:"skill_tags,omitempty"`
}

// SideJob is part-time work held alongside the primary employment.
type SideJob struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	IncomePerMonth decimal.Decimal `json:"income_per_month"`
}

// BudgetAllocation splits discretionary spending intent. Percentages must
// sum to 100.
type BudgetAllocation struct {
	NeedsPct   int `json:"needs_pct"`
	WantsPct   int `json:"wants_pct"`
	SavingsPct int `json:"savings_pct"`
}

func (b BudgetAllocation) Sum() int {
	return b.NeedsPct + b.WantsPct + b.SavingsPct
}

// PendingDecision marks a halted advance batch. It is persisted with the
// state so an interrupted batch survives save/load.
type PendingDecision struct {
	Kind            string           `json:"kind"`
	EventID         string           `json:"event_id,omitempty"`
	AssetID         string           `json:"asset_id,omitempty"`
	Prompt          string           `json:"prompt"`
	Options         []DecisionOption `json:"options"`
	MonthsRemaining int              `json:"months_remaining"`
}

type DecisionOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func (d *PendingDecision) HasOption(id string) bool {
	if d == nil {
		return false
	}
	for _, o := range d.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// NewOptions carries the starting values for character creation. The caller
// (the engine) resolves them from the balance config and chosen path.
type NewOptions struct {
	PathID      string
	Goals       []string
	Cash        decimal.Decimal
	Debt        decimal.Decimal
	CreditScore int
	Wellbeing   int
	AgeYears    int
	Academics   int
	Employment  *Employment
	Now         time.Time
}

// New creates a player state at month zero. Goal selection is validated here
// and immutable afterwards.
func New(id, name string, opts NewOptions) (PlayerState, error) {
	if id == "" {
		return PlayerState{}, fmt.Errorf("player id is required")
	}
	if len(opts.Goals) > MaxGoals {
		return PlayerState{}, fmt.Errorf("at most %d goals may be selected, got %d", MaxGoals, len(opts.Goals))
	}
	seen := map[string]bool{}
	for _, g := range opts.Goals {
		if seen[g] {
			return PlayerState{}, fmt.Errorf("duplicate goal: %s", g)
		}
		seen[g] = true
	}

	st := PlayerState{
		ID:          id,
		Name:        name,
		Cash:        opts.Cash,
		Debt:        opts.Debt,
		Savings:     decimal.Zero,
		CreditScore: clamp(opts.CreditScore, CreditScoreMin, CreditScoreMax),
		Wellbeing:   clamp(opts.Wellbeing, WellbeingMin, WellbeingMax),
		Academics:   clamp(opts.Academics, AcademicsMin, AcademicsMax),
		AgeYears:    opts.AgeYears,
		PathID:      opts.PathID,
		Goals:       append([]string{}, opts.Goals...),
		Employment:  cloneEmployment(opts.Employment),
		CreatedAt:   opts.Now,
		UpdatedAt:   opts.Now,
	}
	st.recompute()
	return st, nil
}

// Normalize repairs a state loaded from storage: clamps ranged fields, sorts
// assets for deterministic iteration, dedupes achievements preserving first
// occurrence, and recomputes net worth.
func Normalize(st PlayerState) PlayerState {
	st.CreditScore = clamp(st.CreditScore, CreditScoreMin, CreditScoreMax)
	st.Wellbeing = clamp(st.Wellbeing, WellbeingMin, WellbeingMax)
	st.Academics = clamp(st.Academics, AcademicsMin, AcademicsMax)
	if st.Debt.IsNegative() {
		st.Debt = decimal.Zero
	}
	if st.Savings.IsNegative() {
		st.Savings = decimal.Zero
	}
	if st.Month < 0 {
		st.Month = 0
	}
	if st.ResumeMonths < 0 {
		st.ResumeMonths = 0
	}

	sort.Slice(st.Assets, func(i, j int) bool { return st.Assets[i].ID < st.Assets[j].ID })

	seen := map[string]bool{}
	deduped := st.Achievements[:0]
	for _, a := range st.Achievements {
		if seen[a] {
			continue
		}
		seen[a] = true
		deduped = append(deduped, a)
	}
	st.Achievements = deduped

	if len(st.Goals) > MaxGoals {
		st.Goals = st.Goals[:MaxGoals]
	}

	st.recompute()
	return st
}

func (p PlayerState) Clone() PlayerState {
	out := p
	out.Goals = append([]string{}, p.Goals...)
	out.Achievements = append([]string{}, p.Achievements...)
	out.Assets = append([]Asset{}, p.Assets...)
	out.Employment = cloneEmployment(p.Employment)
	if p.SideJob != nil {
		sj := *p.SideJob
		out.SideJob = &sj
	}
	if p.Budget != nil {
		b := *p.Budget
		out.Budget = &b
	}
	if p.Pending != nil {
		pd := *p.Pending
		pd.Options = append([]DecisionOption{}, p.Pending.Options...)
		out.Pending = &pd
	}
	return out
}

func cloneEmployment(e *Employment) *Employment {
	if e == nil {
		return nil
	}
	out := *e
	out.SkillTags = append([]string{}, e.SkillTags...)
	return &out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
