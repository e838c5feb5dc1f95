package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"moneypath/internal/achievement"
	"moneypath/internal/catalog"
	"moneypath/internal/config"
	"moneypath/internal/event"
	"moneypath/internal/game"
	"moneypath/internal/minigame"
	"moneypath/internal/player"
	"moneypath/internal/present"
	"moneypath/internal/telemetry"
)

// moneypath-play is the interactive console game. It runs the same engine as
// the HTTP server against a file-backed store, so a session survives across
// runs. MONEYPATH_DIFFICULTY and the MONEYPATH_* variables tune the balance.
func main() {
	_ = godotenv.Load()

	dataDir := flag.String("data-dir", "data", "where player files live")
	seed := flag.Int64("seed", 0, "fixed RNG seed, 0 draws a random one")
	flag.Parse()

	if err := run(*dataDir, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "moneypath-play:", err)
		os.Exit(1)
	}
}

func run(dataDir string, seed int64) error {
	bal, err := config.FromEnv()
	if err != nil {
		return err
	}

	repo, err := player.NewFileRepo(filepath.Join(dataDir, "players"))
	if err != nil {
		return err
	}

	events := event.Seed()
	if err := events.Validate(); err != nil {
		return err
	}

	ui, err := present.New(present.Console, os.Stdout)
	if err != nil {
		return err
	}

	s := &session{
		engine: game.Engine{
			Players:      repo,
			Catalog:      catalog.Default(),
			Events:       events,
			Achievements: achievement.Seed(),
			Minigames:    minigame.Default(),
			Balance:      bal,
			Telemetry:    telemetry.NewMemoryRepository(),
			RNG:          game.NewRNG(seed),
		},
		saves: repo,
		ui:    ui,
		in:    bufio.NewScanner(os.Stdin),
		out:   os.Stdout,
	}
	s.provider = present.NewConsoleProvider(s.in, s.out)

	return s.main(context.Background())
}

var errInputClosed = errors.New("input closed")

type session struct {
	engine   game.Engine
	saves    player.Snapshotter
	ui       present.Presenter
	provider game.DecisionProvider
	in       *bufio.Scanner
	out      io.Writer
	playerID string
}

func (s *session) main(ctx context.Context) error {
	s.ui.Notice("MONEYPATH")
	s.ui.Notice("Ten simulated years, one month at a time.")

	for {
		n, err := s.menu("MAIN MENU", []string{"New game", "Continue", "About", "Quit"})
		if err != nil {
			return nil
		}
		switch n {
		case 1:
			if err := s.newGame(ctx); err != nil {
				return nil
			}
		case 2:
			if err := s.pickPlayer(ctx); err != nil {
				return nil
			}
		case 3:
			s.about()
			continue
		case 4:
			return nil
		}

		if s.playerID == "" {
			continue
		}
		if err := s.play(ctx); err != nil {
			return nil
		}
		s.playerID = ""
	}
}

func (s *session) about() {
	s.ui.Notice("")
	s.ui.Notice("You just finished high school. Pick a path, survive the")
	s.ui.Notice("monthly bills, answer whatever life throws at you, and try")
	s.ui.Notice("to grow your net worth. Months land in batches of 1, 3, or")
	s.ui.Notice("6; some events stop the clock until you decide.")
}

// --- Character creation ---

func (s *session) newGame(ctx context.Context) error {
	name, err := s.prompt("What's your name? ")
	if err != nil {
		return err
	}
	if name == "" {
		name = "Player"
	}

	cat := s.engine.Catalog

	s.ui.Notice("")
	s.ui.Notice("Where do you go after high school?")
	pathLabels := make([]string, 0, len(cat.Paths))
	for _, p := range cat.Paths {
		pathLabels = append(pathLabels, fmt.Sprintf("%s: %s", p.Name, p.Description))
		s.ui.Notice(fmt.Sprintf("  %s costs $%.0f upfront and pays $%.0f/mo for %d months.",
			p.Name, p.UpfrontCost, p.MonthlySalary, p.DurationMonths))
	}
	pn, err := s.menu("CHOOSE YOUR PATH", pathLabels)
	if err != nil {
		return err
	}
	path := cat.Paths[pn-1]

	goals, err := s.pickGoals(cat.Goals)
	if err != nil {
		return err
	}

	sideJobID, err := s.pickStartingSideJob(cat.SideJobs, path)
	if err != nil {
		return err
	}

	st, err := s.engine.CreatePlayer(ctx, game.CreatePlayerParams{
		Name:      name,
		PathID:    path.ID,
		Goals:     goals,
		SideJobID: sideJobID,
	})
	if err != nil {
		s.ui.Notice("Could not start the game: " + err.Error())
		return nil
	}
	s.playerID = st.ID
	return nil
}

func (s *session) pickGoals(goals []catalog.Goal) ([]string, error) {
	s.ui.Notice("")
	s.ui.Notice(fmt.Sprintf("Pick up to %d life goals. They shape your achievements.", player.MaxGoals))
	for i, g := range goals {
		s.ui.Notice(fmt.Sprintf("  %d. %s: %s", i+1, g.Name, g.Description))
	}

	for {
		text, err := s.prompt("Goal numbers, comma separated (Enter for none): ")
		if err != nil {
			return nil, err
		}
		if text == "" {
			return nil, nil
		}

		picked := []string{}
		seen := map[string]bool{}
		ok := true
		for _, part := range strings.Split(text, ",") {
			n, convErr := strconv.Atoi(strings.TrimSpace(part))
			if convErr != nil || n < 1 || n > len(goals) {
				ok = false
				break
			}
			id := goals[n-1].ID
			if seen[id] {
				continue
			}
			seen[id] = true
			picked = append(picked, id)
		}
		if !ok || len(picked) > player.MaxGoals {
			s.ui.Notice(fmt.Sprintf("Please list up to %d numbers between 1 and %d.", player.MaxGoals, len(goals)))
			continue
		}
		return picked, nil
	}
}

func (s *session) pickStartingSideJob(jobs []catalog.SideJob, path catalog.Path) (string, error) {
	if len(jobs) == 0 {
		return "", nil
	}
	if path.Student {
		s.ui.Notice("")
		s.ui.Notice("A part-time job brings money in but costs well-being and grades.")
	}

	labels := make([]string, 0, len(jobs)+1)
	for _, j := range jobs {
		labels = append(labels, fmt.Sprintf("%s ($%.2f/hr, %d hrs/wk, about $%.0f/mo)",
			j.Name, j.HourlyRate, j.HoursPerWeek, j.IncomePerMonth()))
	}
	labels = append(labels, "No side job for now")

	n, err := s.menu("PART-TIME WORK", labels)
	if err != nil {
		return "", err
	}
	if n == len(labels) {
		return "", nil
	}
	return jobs[n-1].ID, nil
}

func (s *session) pickPlayer(ctx context.Context) error {
	players, err := s.engine.ListPlayers(ctx)
	if err != nil {
		s.ui.Notice("Could not list players: " + err.Error())
		return nil
	}
	if len(players) == 0 {
		s.ui.Notice("No players yet. Start a new game first.")
		return nil
	}

	labels := make([]string, 0, len(players)+1)
	for _, p := range players {
		labels = append(labels, fmt.Sprintf("%s, month %d, net worth $%s", p.Name, p.Month, p.NetWorth.StringFixed(2)))
	}
	labels = append(labels, "Back")

	n, err := s.menu("CONTINUE", labels)
	if err != nil {
		return err
	}
	if n == len(labels) {
		return nil
	}
	s.playerID = players[n-1].ID
	return nil
}

// --- The monthly loop ---

func (s *session) play(ctx context.Context) error {
	for {
		st, err := s.engine.Player(ctx, s.playerID)
		if err != nil {
			s.ui.Notice(err.Error())
			return nil
		}
		s.ui.Status(st)

		if st.Pending != nil {
			if err := s.resolvePending(ctx, st); err != nil {
				return err
			}
			continue
		}

		options := []string{
			"Advance 1 month",
			"Advance 3 months",
			"Advance 6 months",
			"Set monthly budget",
			"Savings and debt",
			"Side job",
			"Buy a vehicle",
			"Minigames",
			"Save a snapshot",
			"Restore a snapshot",
			"Main menu",
		}
		if st.ResumeMonths > 0 {
			options = append(options, fmt.Sprintf("Resume the interrupted batch (%d month(s))", st.ResumeMonths))
		}

		n, err := s.menu("WHAT NEXT", options)
		if err != nil {
			return err
		}
		switch n {
		case 1:
			s.advance(ctx, 1)
		case 2:
			s.advance(ctx, 3)
		case 3:
			s.advance(ctx, 6)
		case 4:
			if err := s.setBudget(ctx); err != nil {
				return err
			}
		case 5:
			if err := s.moneyOps(ctx); err != nil {
				return err
			}
		case 6:
			if err := s.sideJob(ctx, st); err != nil {
				return err
			}
		case 7:
			if err := s.buyVehicle(ctx); err != nil {
				return err
			}
		case 8:
			if err := s.minigames(ctx); err != nil {
				return err
			}
		case 9:
			s.saveSnapshot(ctx)
		case 10:
			if err := s.restoreSnapshot(ctx); err != nil {
				return err
			}
		case 11:
			return nil
		case 12:
			s.advance(ctx, st.ResumeMonths)
		}
	}
}

func (s *session) advance(ctx context.Context, months int) {
	rep, err := s.engine.Advance(ctx, s.playerID, months, s.provider)
	if err != nil {
		s.ui.Notice("Advance failed: " + err.Error())
		return
	}
	s.ui.Report(rep)
}

func (s *session) resolvePending(ctx context.Context, st player.PlayerState) error {
	choice, err := s.provider.Decide(ctx, *st.Pending)
	if errors.Is(err, event.ErrNoChoice) {
		return errInputClosed
	}
	if err != nil {
		s.ui.Notice("Decision failed: " + err.Error())
		return errInputClosed
	}

	res, err := s.engine.ResolveDecision(ctx, s.playerID, game.Decision{
		Kind:     st.Pending.Kind,
		ChoiceID: choice.OptionID,
	})
	if err != nil {
		s.ui.Notice("Decision failed: " + err.Error())
		return nil
	}
	s.ui.Resolution(res)
	return nil
}

func (s *session) setBudget(ctx context.Context) error {
	s.ui.Notice("Split your discretionary spending. The three must total 100.")
	needs, err := s.promptInt("Needs % (rent, food, bills): ")
	if err != nil {
		return err
	}
	wants, err := s.promptInt("Wants % (fun money): ")
	if err != nil {
		return err
	}
	savings, err := s.promptInt("Savings %: ")
	if err != nil {
		return err
	}

	res, err := s.engine.ResolveDecision(ctx, s.playerID, game.Decision{
		Kind:   game.DecisionBudget,
		Budget: &player.BudgetAllocation{NeedsPct: needs, WantsPct: wants, SavingsPct: savings},
	})
	if err != nil {
		s.ui.Notice("Budget not set: " + err.Error())
		return nil
	}
	s.ui.Resolution(res)
	return nil
}

func (s *session) moneyOps(ctx context.Context) error {
	n, err := s.menu("SAVINGS AND DEBT", []string{
		"Deposit cash into savings",
		"Withdraw savings into cash",
		"Pay down debt",
		"Back",
	})
	if err != nil {
		return err
	}
	if n == 4 {
		return nil
	}

	amount, err := s.promptAmount("Amount: $")
	if err != nil {
		return err
	}

	var (
		res   game.LedgerResult
		label string
		opErr error
	)
	switch n {
	case 1:
		label = "Deposited"
		res, opErr = s.engine.DepositSavings(ctx, s.playerID, amount)
	case 2:
		label = "Withdrew"
		res, opErr = s.engine.WithdrawSavings(ctx, s.playerID, amount)
	case 3:
		label = "Paid"
		res, opErr = s.engine.PayDebt(ctx, s.playerID, amount)
	}
	if opErr != nil {
		s.ui.Notice("No money moved: " + opErr.Error())
		return nil
	}
	s.ui.Ledger(label, res)
	return nil
}

func (s *session) sideJob(ctx context.Context, st player.PlayerState) error {
	if st.SideJob != nil {
		n, err := s.menu("SIDE JOB", []string{"Quit " + st.SideJob.Name, "Keep it"})
		if err != nil {
			return err
		}
		if n == 1 {
			if _, qErr := s.engine.QuitSideJob(ctx, s.playerID); qErr != nil {
				s.ui.Notice("Could not quit: " + qErr.Error())
			} else {
				s.ui.Notice("You quit the side job.")
			}
		}
		return nil
	}

	if st.Employment != nil && st.Employment.Kind == player.KindEducation {
		s.ui.Notice("Working while studying costs well-being and grades each month.")
	}

	jobs := s.engine.Catalog.SideJobs
	labels := make([]string, 0, len(jobs)+1)
	for _, j := range jobs {
		labels = append(labels, fmt.Sprintf("%s ($%.2f/hr, %d hrs/wk, about $%.0f/mo)",
			j.Name, j.HourlyRate, j.HoursPerWeek, j.IncomePerMonth()))
	}
	labels = append(labels, "Back")

	n, err := s.menu("TAKE A SIDE JOB", labels)
	if err != nil {
		return err
	}
	if n == len(labels) {
		return nil
	}
	if _, takeErr := s.engine.TakeSideJob(ctx, s.playerID, jobs[n-1].ID); takeErr != nil {
		s.ui.Notice("Could not take the job: " + takeErr.Error())
		return nil
	}
	s.ui.Notice("You took the " + jobs[n-1].Name + " job.")
	return nil
}

func (s *session) buyVehicle(ctx context.Context) error {
	vehicles := s.engine.Catalog.Vehicles
	labels := make([]string, 0, len(vehicles)+1)
	for _, v := range vehicles {
		labels = append(labels, fmt.Sprintf("%s ($%.0f): %s", v.Name, v.Price, v.Description))
	}
	labels = append(labels, "Back")

	n, err := s.menu("BUY A VEHICLE", labels)
	if err != nil {
		return err
	}
	if n == len(labels) {
		return nil
	}

	res, buyErr := s.engine.ResolveDecision(ctx, s.playerID, game.Decision{
		Kind:      game.DecisionVehicle,
		VehicleID: vehicles[n-1].ID,
	})
	if buyErr != nil {
		s.ui.Notice("No sale: " + buyErr.Error())
		return nil
	}
	s.ui.Resolution(res)
	return nil
}

// --- Minigames ---

func (s *session) minigames(ctx context.Context) error {
	infos, err := s.engine.AvailableMinigames(ctx, s.playerID)
	if err != nil {
		s.ui.Notice(err.Error())
		return nil
	}
	if len(infos) == 0 {
		s.ui.Notice("No minigames available right now. Some need cash or income.")
		return nil
	}

	labels := make([]string, 0, len(infos)+1)
	for _, g := range infos {
		labels = append(labels, g.Title+": "+g.Description)
	}
	labels = append(labels, "Back")

	n, err := s.menu("MINIGAMES", labels)
	if err != nil {
		return err
	}
	if n == len(labels) {
		return nil
	}

	req, ok, err := s.minigameRequest(ctx, infos[n-1].ID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	res, playErr := s.engine.PlayMinigame(ctx, s.playerID, req)
	if playErr != nil {
		s.ui.Notice("Minigame failed: " + playErr.Error())
		return nil
	}
	s.ui.Minigame(res)
	return nil
}

// minigameRequest collects the chosen game's inputs. The console host knows
// the built-in games well enough to walk their options.
func (s *session) minigameRequest(ctx context.Context, gameID string) (minigame.Request, bool, error) {
	st, err := s.engine.Player(ctx, s.playerID)
	if err != nil {
		s.ui.Notice(err.Error())
		return minigame.Request{}, false, nil
	}

	g, _ := s.engine.Minigames.ByID(gameID)
	switch g := g.(type) {
	case *minigame.ComparisonShopping:
		labels := make([]string, 0, len(g.Categories))
		for _, c := range g.Categories {
			labels = append(labels, c.ID)
		}
		n, err := s.menu("PICK A CATEGORY", labels)
		if err != nil {
			return minigame.Request{}, false, err
		}
		cat := g.Categories[n-1]

		s.ui.Notice(fmt.Sprintf("Your budget is $%s.", g.Budget(st).StringFixed(2)))
		products := g.Affordable(st, cat.ID)
		if len(products) == 0 {
			s.ui.Notice("Nothing in this category fits the budget. Sometimes that is the answer.")
			return minigame.Request{GameID: gameID, Category: cat.ID}, true, nil
		}

		plabels := make([]string, 0, len(products))
		for _, p := range products {
			extra := ""
			if p.WarrantyYears > 0 {
				extra = fmt.Sprintf(", %d yr warranty", p.WarrantyYears)
			}
			if p.MPG > 0 {
				extra = fmt.Sprintf(", %d mpg", p.MPG)
			}
			plabels = append(plabels, fmt.Sprintf("%s ($%d, quality %d/10%s)", p.Name, p.Price, p.Quality, extra))
		}
		pn, err := s.menu("PICK A PRODUCT", plabels)
		if err != nil {
			return minigame.Request{}, false, err
		}
		return minigame.Request{GameID: gameID, Category: cat.ID, OptionID: products[pn-1].ID}, true, nil

	case *minigame.BudgetChallenge:
		income := st.MonthlyIncome()
		s.ui.Notice(fmt.Sprintf("Split your monthly income of $%s across five categories.", income.StringFixed(2)))
		alloc := map[string]float64{}
		for _, key := range []string{
			minigame.AllocHousing,
			minigame.AllocFood,
			minigame.AllocTransport,
			minigame.AllocSavings,
			minigame.AllocEntertainment,
		} {
			v, err := s.promptFloat(key + ": $")
			if err != nil {
				return minigame.Request{}, false, err
			}
			alloc[key] = v
		}
		return minigame.Request{GameID: gameID, Allocation: alloc}, true, nil

	case *minigame.InvestmentSim:
		labels := make([]string, 0, len(g.Options))
		for _, o := range g.Options {
			labels = append(labels, fmt.Sprintf("%s (about %.1f%%/yr, risk %.0f%%)", o.Name, o.AnnualReturn*100, o.Risk*100))
		}
		n, err := s.menu("PICK AN INVESTMENT", labels)
		if err != nil {
			return minigame.Request{}, false, err
		}
		return minigame.Request{GameID: gameID, OptionID: g.Options[n-1].ID}, true, nil
	}

	return minigame.Request{GameID: gameID}, true, nil
}

// --- Snapshots ---

func (s *session) saveSnapshot(ctx context.Context) {
	st, err := s.engine.Player(ctx, s.playerID)
	if err != nil {
		s.ui.Notice(err.Error())
		return
	}
	token, err := s.saves.Save(ctx, st)
	if err != nil {
		s.ui.Notice("Save failed: " + err.Error())
		return
	}
	if s.engine.Telemetry != nil {
		_ = s.engine.Telemetry.RecordEvent(telemetry.EventSnapshotSaved, st.ID, telemetry.EventMetadata{"token": token})
	}
	s.ui.Notice("Saved. Restore token: " + token)
}

func (s *session) restoreSnapshot(ctx context.Context) error {
	tokens, err := s.saves.Snapshots(ctx)
	if err != nil {
		s.ui.Notice("Could not list snapshots: " + err.Error())
		return nil
	}
	if len(tokens) == 0 {
		s.ui.Notice("No snapshots yet.")
		return nil
	}

	labels := []string{}
	states := []player.PlayerState{}
	for _, tok := range tokens {
		st, loadErr := s.saves.Load(ctx, tok)
		if loadErr != nil {
			continue
		}
		short := tok
		if len(short) > 8 {
			short = short[:8]
		}
		labels = append(labels, fmt.Sprintf("%s, month %d (%s)", st.Name, st.Month, short))
		states = append(states, st)
	}
	labels = append(labels, "Back")

	n, err := s.menu("RESTORE A SNAPSHOT", labels)
	if err != nil {
		return err
	}
	if n == len(labels) {
		return nil
	}

	st := states[n-1]
	if putErr := s.engine.Players.Put(ctx, st); putErr != nil {
		s.ui.Notice("Restore failed: " + putErr.Error())
		return nil
	}
	if s.engine.Telemetry != nil {
		_ = s.engine.Telemetry.RecordEvent(telemetry.EventSnapshotLoaded, st.ID, telemetry.EventMetadata{})
	}
	s.playerID = st.ID
	s.ui.Notice("Snapshot restored.")
	return nil
}

// --- Input helpers ---

func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) menu(title string, options []string) (int, error) {
	s.ui.Notice("")
	s.ui.Notice(title)
	for i, o := range options {
		s.ui.Notice(fmt.Sprintf("  %d. %s", i+1, o))
	}
	for {
		text, err := s.prompt(fmt.Sprintf("Choose an option (1-%d): ", len(options)))
		if err != nil {
			return 0, err
		}
		if n, convErr := strconv.Atoi(text); convErr == nil && n >= 1 && n <= len(options) {
			return n, nil
		}
		s.ui.Notice(fmt.Sprintf("Please enter 1-%d.", len(options)))
	}
}

func (s *session) promptInt(label string) (int, error) {
	for {
		text, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(text)
		if convErr != nil || n < 0 {
			s.ui.Notice("Please enter a whole number.")
			continue
		}
		return n, nil
	}
}

func (s *session) promptFloat(label string) (float64, error) {
	for {
		text, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		v, convErr := strconv.ParseFloat(text, 64)
		if convErr != nil || v < 0 {
			s.ui.Notice("Please enter a dollar amount, 0 or more.")
			continue
		}
		return v, nil
	}
}

func (s *session) promptAmount(label string) (decimal.Decimal, error) {
	for {
		text, err := s.prompt(label)
		if err != nil {
			return decimal.Zero, err
		}
		d, convErr := decimal.NewFromString(text)
		if convErr != nil || !d.IsPositive() {
			s.ui.Notice("Please enter a positive amount.")
			continue
		}
		return d, nil
	}
}
