package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"moneypath/internal/game"
	"moneypath/internal/player"
)

const consoleWidth = 60

// ConsolePresenter writes plain-text panels to a writer, sixty columns wide.
type ConsolePresenter struct {
	out io.Writer
}

func NewConsole(out io.Writer) *ConsolePresenter {
	return &ConsolePresenter{out: out}
}

func (c *ConsolePresenter) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

func (c *ConsolePresenter) separator() {
	fmt.Fprintln(c.out, strings.Repeat("=", consoleWidth))
}

func (c *ConsolePresenter) header(title string) {
	fmt.Fprintln(c.out)
	c.separator()
	c.printf("  %s", title)
	c.separator()
}

func (c *ConsolePresenter) Notice(msg string) {
	c.printf("%s", msg)
}

func (c *ConsolePresenter) Status(st player.PlayerState) {
	c.header("FINANCIAL STATUS")
	c.printf("%s, age %d, month %d", st.Name, st.AgeYears, st.Month)
	c.printf("Cash:         %s", money(st.Cash))
	if st.Employment != nil {
		c.printf("Income:       %s/mo  (%s)", money(st.Employment.IncomePerMonth), st.Employment.Title)
	}
	if st.SideJob != nil {
		c.printf("Side job:     %s/mo  (%s)", money(st.SideJob.IncomePerMonth), st.SideJob.Name)
	}
	if st.Debt.IsPositive() {
		c.printf("Debt:         %s", money(st.Debt))
	}
	if st.Savings.IsPositive() {
		c.printf("Savings:      %s", money(st.Savings))
	}
	c.printf("Net worth:    %s", money(st.NetWorth))
	c.printf("Credit score: %d    Well-being: %d/100", st.CreditScore, st.Wellbeing)
	if st.Employment != nil && st.Employment.Kind == player.KindEducation {
		c.printf("Academics:    %d/100", st.Academics)
	}
	for _, a := range st.Assets {
		note := ""
		if a.NeedsRepair {
			note = "  needs repair"
		}
		c.printf("Asset:        %s, condition %d/100%s", a.Name, a.Condition, note)
	}
	if len(st.Achievements) > 0 {
		c.printf("Achievements: %s", strings.Join(st.Achievements, ", "))
	}
	if st.Pending != nil {
		c.printf("A decision is waiting: %s", st.Pending.Prompt)
	}
}

func (c *ConsolePresenter) Report(rep game.AdvanceReport) {
	c.header(fmt.Sprintf("ADVANCED %d OF %d MONTH(S)", rep.MonthsCompleted, rep.MonthsRequested))
	for _, m := range rep.Months {
		c.printf("Month %d: income %s, expenses %s, interest %s, payment %s",
			m.Month, money(m.Income), money(m.Expenses), money(m.Interest), money(m.DebtPayment))
		if m.MissedPayment {
			c.printf("  Missed the loan payment. Credit score takes the hit.")
		}
		if m.CashNegative {
			c.printf("  Cash went negative this month.")
		}
		if m.CareerStarted {
			c.printf("  Education complete. Career salary starts now.")
		}
		for _, id := range m.RepairsQueued {
			c.printf("  %s needs attention.", id)
		}
		if m.Event != nil {
			c.event(*m.Event)
		}
		for _, id := range m.Achievements {
			c.printf("  Achievement unlocked: %s", id)
		}
	}
	if rep.Pending != nil {
		c.Pending(*rep.Pending)
	}
}

func (c *ConsolePresenter) event(o game.EventOutcome) {
	if o.Pending {
		c.printf("  Event: %s (decision pending)", o.Title)
		return
	}
	line := fmt.Sprintf("  Event: %s", o.Title)
	if o.ChoiceID != "" {
		line += fmt.Sprintf(" [%s]", o.ChoiceID)
	}
	c.printf("%s", line)
	c.deltas(o)
}

func (c *ConsolePresenter) deltas(o game.EventOutcome) {
	if !o.CashDelta.IsZero() {
		c.printf("    cash %s", signedMoney(o.CashDelta))
	}
	if !o.DebtReduced.IsZero() {
		c.printf("    debt reduced by %s", money(o.DebtReduced))
	}
	if o.WellbeingDelta != 0 {
		c.printf("    well-being %+d", o.WellbeingDelta)
	}
	if o.CreditScoreDelta != 0 {
		c.printf("    credit score %+d", o.CreditScoreDelta)
	}
	if o.NewSalary != nil {
		c.printf("    new salary %s/mo", money(*o.NewSalary))
	}
}

func (c *ConsolePresenter) Resolution(res game.ResolutionResult) {
	c.header("DECISION RESOLVED")
	c.printf("Kind: %s", res.Kind)
	if res.Outcome != nil {
		c.deltas(*res.Outcome)
	}
	if res.LoanTaken.IsPositive() {
		c.printf("Loan taken: %s", money(res.LoanTaken))
	}
	if res.SalePrice.IsPositive() {
		c.printf("Sold for: %s", money(res.SalePrice))
	}
	for _, id := range res.Achievements {
		c.printf("Achievement unlocked: %s", id)
	}
	if res.MonthsRemaining > 0 {
		c.printf("%d month(s) of the interrupted batch remain.", res.MonthsRemaining)
	}
}

func (c *ConsolePresenter) Ledger(label string, res game.LedgerResult) {
	c.printf("%s %s. Cash %s, savings %s, debt %s.",
		label, money(res.Amount), money(res.Player.Cash), money(res.Player.Savings), money(res.Player.Debt))
	for _, id := range res.Achievements {
		c.printf("Achievement unlocked: %s", id)
	}
}

func (c *ConsolePresenter) Minigame(res game.MinigameResult) {
	c.header("MINIGAME RESULT")
	o := res.Outcome
	if o.Won {
		c.printf("You won!")
	} else {
		c.printf("Not this time.")
	}
	if o.Score != 0 {
		c.printf("Score: %d", o.Score)
	}
	if !o.CashDelta.IsZero() {
		c.printf("Cash %s", signedMoney(o.CashDelta))
	}
	if o.WellbeingDelta != 0 {
		c.printf("Well-being %+d", o.WellbeingDelta)
	}
	c.printf("Lesson: %s", o.Lesson)
	for k, v := range o.Details {
		c.printf("  %s: %s", k, v)
	}
	for _, id := range res.Achievements {
		c.printf("Achievement unlocked: %s", id)
	}
}

func (c *ConsolePresenter) Pending(p player.PendingDecision) {
	c.header("DECISION NEEDED")
	c.printf("%s", p.Prompt)
	for i, o := range p.Options {
		c.printf("  %d. %s", i+1, o.Label)
	}
}

// money renders a decimal as dollars with thousands separators.
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}

	out := "$" + b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

func signedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return money(d)
	}
	return "+" + money(d)
}
