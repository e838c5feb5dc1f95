package present

import (
	"moneypath/internal/game"
	"moneypath/internal/player"
)

// HeadlessPresenter renders nothing. Tests and non-interactive hosts use it
// where a Presenter is required.
type HeadlessPresenter struct{}

func NewHeadless() HeadlessPresenter { return HeadlessPresenter{} }

func (HeadlessPresenter) Status(player.PlayerState) {}

func (HeadlessPresenter) Report(game.AdvanceReport) {}

func (HeadlessPresenter) Resolution(game.ResolutionResult) {}

func (HeadlessPresenter) Ledger(string, game.LedgerResult) {}

func (HeadlessPresenter) Minigame(game.MinigameResult) {}

func (HeadlessPresenter) Pending(player.PendingDecision) {}

func (HeadlessPresenter) Notice(string) {}
