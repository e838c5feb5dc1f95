package present

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypath/internal/event"
	"moneypath/internal/game"
	"moneypath/internal/player"
)

func TestMoneyFormatting(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"12", "$12.00"},
		{"1234.5", "$1,234.50"},
		{"999999.99", "$999,999.99"},
		{"1000000", "$1,000,000.00"},
		{"-99999.99", "-$99,999.99"},
	}
	for _, c := range cases {
		d := decimal.RequireFromString(c.in)
		assert.Equal(t, c.want, money(d), "money(%s)", c.in)
	}

	assert.Equal(t, "+$5.00", signedMoney(decimal.NewFromInt(5)))
	assert.Equal(t, "-$5.00", signedMoney(decimal.NewFromInt(-5)))
}

func TestConsoleStatus(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Status(player.PlayerState{
		ID:          "p1",
		Name:        "Alex",
		AgeYears:    18,
		Month:       7,
		Cash:        decimal.NewFromInt(1250),
		Debt:        decimal.NewFromInt(13000),
		Savings:     decimal.NewFromInt(400),
		NetWorth:    decimal.NewFromInt(-11350),
		CreditScore: 640,
		Wellbeing:   55,
		Employment: &player.Employment{
			Kind: player.KindEducation, Title: "Trade School Student",
			IncomePerMonth: decimal.Zero,
		},
		Academics: 80,
		Assets: []player.Asset{
			{ID: "v1", Kind: player.AssetVehicle, Name: "Old Beater", Condition: 48, NeedsRepair: true},
		},
		Achievements: []string{"first_dollar_saved"},
	})

	out := buf.String()
	assert.Contains(t, out, "FINANCIAL STATUS")
	assert.Contains(t, out, "Alex, age 18, month 7")
	assert.Contains(t, out, "Cash:         $1,250.00")
	assert.Contains(t, out, "Debt:         $13,000.00")
	assert.Contains(t, out, "Net worth:    -$11,350.00")
	assert.Contains(t, out, "Credit score: 640")
	assert.Contains(t, out, "Academics:    80/100")
	assert.Contains(t, out, "Old Beater, condition 48/100  needs repair")
	assert.Contains(t, out, "first_dollar_saved")
}

func TestConsoleReport(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	salary := decimal.NewFromInt(3000)
	c.Report(game.AdvanceReport{
		PlayerID:        "p1",
		MonthsRequested: 3,
		MonthsCompleted: 2,
		Months: []game.MonthReport{
			{
				Month:       1,
				Income:      decimal.NewFromInt(2200),
				Expenses:    decimal.NewFromInt(1800),
				Interest:    decimal.NewFromFloat(54.17),
				DebtPayment: decimal.NewFromInt(260),
				Event: &game.EventOutcome{
					EventID: "work_bonus", Title: "Performance Bonus",
					CashDelta: decimal.NewFromInt(500),
				},
				Achievements: []string{"positive_net_worth"},
			},
			{
				Month:         2,
				Income:        decimal.NewFromInt(2200),
				Expenses:      decimal.NewFromInt(1800),
				MissedPayment: true,
				CareerStarted: true,
				Event: &game.EventOutcome{
					EventID: "pay_raise", Title: "Pay Raise",
					NewSalary: &salary,
				},
			},
		},
		Pending: &player.PendingDecision{
			Kind:   player.PendingEvent,
			Prompt: "Your car broke down. What now?",
			Options: []player.DecisionOption{
				{ID: "full_repair", Label: "Full repair ($600)"},
				{ID: "ignore", Label: "Keep driving it"},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "ADVANCED 2 OF 3 MONTH(S)")
	assert.Contains(t, out, "Month 1: income $2,200.00")
	assert.Contains(t, out, "Event: Performance Bonus")
	assert.Contains(t, out, "cash +$500.00")
	assert.Contains(t, out, "Achievement unlocked: positive_net_worth")
	assert.Contains(t, out, "Missed the loan payment")
	assert.Contains(t, out, "Career salary starts now")
	assert.Contains(t, out, "new salary $3,000.00/mo")
	assert.Contains(t, out, "DECISION NEEDED")
	assert.Contains(t, out, "1. Full repair ($600)")
}

func TestConsoleResolutionAndLedger(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Resolution(game.ResolutionResult{
		PlayerID:        "p1",
		Kind:            game.DecisionVehicle,
		LoanTaken:       decimal.NewFromInt(1500),
		SalePrice:       decimal.NewFromInt(900),
		MonthsRemaining: 2,
	})
	c.Ledger("Deposited", game.LedgerResult{
		PlayerID: "p1",
		Amount:   decimal.NewFromInt(200),
		Player: player.PlayerState{
			Cash:    decimal.NewFromInt(800),
			Savings: decimal.NewFromInt(200),
		},
		Achievements: []string{"first_dollar_saved"},
	})

	out := buf.String()
	assert.Contains(t, out, "Loan taken: $1,500.00")
	assert.Contains(t, out, "Sold for: $900.00")
	assert.Contains(t, out, "2 month(s) of the interrupted batch remain")
	assert.Contains(t, out, "Deposited $200.00. Cash $800.00, savings $200.00, debt $0.00.")
	assert.Contains(t, out, "Achievement unlocked: first_dollar_saved")
}

func TestConsoleProviderPicksByIndex(t *testing.T) {
	pending := player.PendingDecision{
		Prompt: "Pick one.",
		Options: []player.DecisionOption{
			{ID: "full_repair", Label: "Full repair"},
			{ID: "patch_up", Label: "Patch it up"},
		},
	}

	var out bytes.Buffer
	p := NewConsoleProvider(bufio.NewScanner(strings.NewReader("2\n")), &out)

	choice, err := p.Decide(context.Background(), pending)
	require.NoError(t, err)
	assert.Equal(t, "patch_up", choice.OptionID)
	assert.Contains(t, out.String(), "Pick one.")
	assert.Contains(t, out.String(), "2. Patch it up")
}

func TestConsoleProviderAcceptsOptionID(t *testing.T) {
	pending := player.PendingDecision{
		Prompt:  "Pick one.",
		Options: []player.DecisionOption{{ID: "attend", Label: "Attend"}},
	}

	var out bytes.Buffer
	p := NewConsoleProvider(bufio.NewScanner(strings.NewReader("attend\n")), &out)

	choice, err := p.Decide(context.Background(), pending)
	require.NoError(t, err)
	assert.Equal(t, "attend", choice.OptionID)
}

func TestConsoleProviderRepromptsOnInvalidInput(t *testing.T) {
	pending := player.PendingDecision{
		Prompt: "Pick one.",
		Options: []player.DecisionOption{
			{ID: "attend", Label: "Attend"},
			{ID: "decline", Label: "Decline"},
		},
	}

	var out bytes.Buffer
	p := NewConsoleProvider(bufio.NewScanner(strings.NewReader("9\nnope\n1\n")), &out)

	choice, err := p.Decide(context.Background(), pending)
	require.NoError(t, err)
	assert.Equal(t, "attend", choice.OptionID)
	assert.Contains(t, out.String(), "Please enter 1-2")
}

func TestConsoleProviderDeclinesOnEOF(t *testing.T) {
	pending := player.PendingDecision{
		Prompt:  "Pick one.",
		Options: []player.DecisionOption{{ID: "attend", Label: "Attend"}},
	}

	p := NewConsoleProvider(bufio.NewScanner(strings.NewReader("")), &bytes.Buffer{})

	_, err := p.Decide(context.Background(), pending)
	require.ErrorIs(t, err, event.ErrNoChoice)
}

func TestNewPresenterFactory(t *testing.T) {
	var buf bytes.Buffer

	p, err := New(Console, &buf)
	require.NoError(t, err)
	require.IsType(t, &ConsolePresenter{}, p)

	p, err = New(Headless, nil)
	require.NoError(t, err)
	p.Notice("dropped")

	_, err = New(GUI, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not built yet")

	_, err = New(Capability("holograph"), &buf)
	require.Error(t, err)
}
