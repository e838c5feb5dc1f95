package present

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"moneypath/internal/event"
	"moneypath/internal/game"
	"moneypath/internal/player"
)

// ConsoleProvider answers mid-advance decisions by prompting on the
// terminal. The scanner may be shared with the host's own prompts so
// buffered input is not split between readers. Input that stops (EOF)
// declines the decision, which halts the batch at the month boundary so the
// session can resume later.
type ConsoleProvider struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsoleProvider(in *bufio.Scanner, out io.Writer) *ConsoleProvider {
	return &ConsoleProvider{in: in, out: out}
}

func (p *ConsoleProvider) Decide(ctx context.Context, pending player.PendingDecision) (game.Choice, error) {
	if err := ctx.Err(); err != nil {
		return game.Choice{}, err
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, pending.Prompt)
	for i, o := range pending.Options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, o.Label)
	}

	for {
		fmt.Fprintf(p.out, "Choose an option (1-%d): ", len(pending.Options))
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return game.Choice{}, err
			}
			return game.Choice{}, event.ErrNoChoice
		}

		text := strings.TrimSpace(p.in.Text())
		if n, err := strconv.Atoi(text); err == nil && n >= 1 && n <= len(pending.Options) {
			return game.Choice{OptionID: pending.Options[n-1].ID}, nil
		}
		if pending.HasOption(text) {
			return game.Choice{OptionID: text}, nil
		}
		fmt.Fprintf(p.out, "Please enter 1-%d or an option id.\n", len(pending.Options))
	}
}
