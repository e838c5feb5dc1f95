// Package present renders engine results for a human. The engine never
// formats text; hosts pick a capability and hand report structs over. The
// console game also gets its interactive decision provider from here.
package present

import (
	"fmt"
	"io"

	"moneypath/internal/game"
	"moneypath/internal/player"
)

// Capability selects a presentation backend.
type Capability string

const (
	Console  Capability = "console"
	GUI      Capability = "gui"
	Headless Capability = "headless"
)

// Presenter is the rendering surface a host drives. Implementations must not
// mutate the structs they receive.
type Presenter interface {
	// Status renders the player's current ledger and standing.
	Status(st player.PlayerState)

	// Report renders an advance batch month by month.
	Report(rep game.AdvanceReport)

	// Resolution renders the outcome of a resolved decision.
	Resolution(res game.ResolutionResult)

	// Ledger renders a direct money move. The label names the operation,
	// e.g. "Deposited" or "Paid toward debt".
	Ledger(label string, res game.LedgerResult)

	// Minigame renders a played game's outcome and lesson.
	Minigame(res game.MinigameResult)

	// Pending renders a decision waiting for an answer.
	Pending(p player.PendingDecision)

	// Notice renders one free-form line.
	Notice(msg string)
}

// New builds the presenter for a capability. GUI is declared but has no
// backend; asking for it reports what is available instead.
func New(c Capability, out io.Writer) (Presenter, error) {
	switch c {
	case Console:
		return NewConsole(out), nil
	case Headless:
		return NewHeadless(), nil
	case GUI:
		return nil, fmt.Errorf("gui presenter is not built yet; available capabilities: %s, %s", Console, Headless)
	default:
		return nil, fmt.Errorf("unknown presenter capability %q", c)
	}
}
