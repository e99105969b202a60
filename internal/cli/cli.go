// Package cli is the interactive co-pilot: it logs game actions, runs solves
// and action scans in the background, and renders their results.
package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"mystery-copilot/internal/card"
	"mystery-copilot/internal/config"
	"mystery-copilot/internal/evaluate"
	"mystery-copilot/internal/solve"
	"mystery-copilot/internal/state"
)

// CLI manages all command-line interactions.
type CLI struct {
	log  *logrus.Logger
	cfg  *config.Config
	line *liner.State

	solver *solve.PossibleStateEliminationSolver
	finder evaluate.ActionFinder

	mu             sync.Mutex
	gs             state.GameState
	solvingState   state.GameState
	solvedState    state.GameState
	possibleStates []state.PossibleState
	solutions      []state.Solution
	bestActions    []evaluate.PotentialAction
	solveActive    bool
	evalActive     bool
}

// NewCLI creates a new command-line interface manager.
func NewCLI(log *logrus.Logger, cfg *config.Config) *CLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &CLI{
		log:  log,
		cfg:  cfg,
		line: line,
	}
}

// Run is the main entry point for the CLI application.
func (c *CLI) Run(args []string, rng *rand.Rand) error {
	defer c.line.Close()
	if len(args) < 1 {
		c.printUsage()
		return errors.New("no command provided")
	}

	c.solver = solve.NewPossibleStateEliminationSolver(c.log, c, c.cfg.Workers)
	c.finder = c.newActionFinder(rng)

	switch args[0] {
	case "copilot":
		c.gs = c.setUpGame()
	case "seed":
		if len(args) != 2 {
			c.printUsage()
			return errors.New("invalid arguments for 'seed' command")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read seed file: %w", err)
		}
		gs, err := state.NewGameStateFromSeed(data)
		if err != nil {
			return fmt.Errorf("failed to load seed: %w", err)
		}
		c.gs = gs
	default:
		c.printUsage()
		return fmt.Errorf("unknown command '%s'", args[0])
	}

	C.Info.Println("\nThe co-pilot is ready.")
	RenderGameState(c.gs)
	c.printHelp()
	return c.commandLoop()
}

// newActionFinder assembles the evaluation pipeline from the config: the
// brute-force driver around the configured ranking metric, sampled when a
// sample rate is set.
func (c *CLI) newActionFinder(rng *rand.Rand) evaluate.ActionFinder {
	factory := func(gs state.GameState, possibleStates []state.PossibleState) evaluate.ActionEvaluator {
		if c.cfg.Evaluator == config.EvaluatorSolutions {
			return evaluate.NewExpectedSolutionsRemovedEvaluator(gs, possibleStates)
		}
		return evaluate.NewExpectedStatesRemovedEvaluator(gs, possibleStates)
	}
	var finder evaluate.ActionFinder = evaluate.NewBruteForceActionEvaluator(
		c.log, c, c.cfg.Workers, c.cfg.Streaming, rng, factory)
	if c.cfg.SampleRate > 0 {
		// The sampler and the driver each guard their own generator, so they
		// must not share one.
		samplerRng := rand.New(rand.NewSource(rng.Int63()))
		finder = evaluate.NewSamplingActionEvaluator(finder, c.cfg.SampleRate, samplerRng)
	}
	return finder
}

// setUpGame collects the table layout and the user's two hidden cards.
func (c *CLI) setUpGame() state.GameState {
	C.Info.Println("\n--- Setting Up Your Game ---")
	numPlayers := c.promptForInt("How many players are in the game? (2-6): ", 2, 6)

	names := make([]string, 0, numPlayers)
	names = append(names, c.promptForString("Enter your name: "))
	for i := 1; i < numPlayers; i++ {
		names = append(names, c.promptForString(fmt.Sprintf("Enter name for player %d: ", i+1)))
	}

	gs := state.NewGameStateWithNames(names)
	C.Info.Println("\nNow enter the two cards hidden in front of you.")
	remaining := gs.Cards
	left := c.promptForCard("Your left card: ", remaining)
	remaining = remaining.Subtracting(card.NewSet(left))
	right := c.promptForCard("Your right card: ", remaining)
	remaining = remaining.Subtracting(card.NewSet(right))

	me := gs.Players[0]
	me.Hidden = me.Hidden.WithCardOnLeft(left).WithCardOnRight(right)
	gs = gs.WithPlayer(0, me)

	for i, p := range gs.Players {
		if i == 0 {
			continue
		}
		C.Info.Printf("\nEnter the three mystery cards you can see in front of %s.\n", p.Name)
		person := c.promptForCard("Their person: ", remaining.People())
		location := c.promptForCard("Their location: ", remaining.Locations())
		weapon := c.promptForCard("Their weapon: ", remaining.Weapons())
		remaining = remaining.Subtracting(card.NewSet(person, location, weapon))

		p.Mystery = state.NewMysteryCardSet(person, location, weapon)
		gs = gs.WithPlayer(i, p)
	}
	return gs
}

func (c *CLI) commandLoop() error {
	for {
		input, err := c.line.Prompt("(copilot) ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				C.Info.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("error reading line: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		c.line.AppendHistory(input)

		switch strings.ToLower(strings.Fields(input)[0]) {
		case "ask", "a":
			c.handleAsk()
		case "accuse", "ac":
			c.handleAccuse()
		case "examine", "e":
			c.handleExamine()
		case "undo", "u":
			c.handleUndo()
		case "solve", "s":
			c.handleSolve()
		case "best", "b":
			c.handleBest()
		case "progress", "p":
			c.handleProgress()
		case "cancel", "c":
			c.handleCancel()
		case "notes", "n":
			RenderGameState(c.currentState())
		case "help", "h":
			c.printHelp()
		case "quit", "q":
			C.Info.Println("Goodbye!")
			return nil
		default:
			C.Warn.Printf("Unknown command '%s'. Type 'help' for a list of commands.\n", input)
		}
	}
}

func (c *CLI) currentState() state.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gs
}

func (c *CLI) playerNames() []string {
	gs := c.currentState()
	names := make([]string, 0, len(gs.Players))
	for _, p := range gs.Players {
		names = append(names, p.Name)
	}
	return names
}

func (c *CLI) namesExcluding(exclude string) []string {
	var names []string
	for _, name := range c.playerNames() {
		if name != exclude {
			names = append(names, name)
		}
	}
	return names
}

func (c *CLI) appendAction(build func(gs state.GameState, ordinal int) state.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gs = c.gs.Appending(build(c.gs, len(c.gs.Actions)))
}

func (c *CLI) handleAsk() {
	gs := c.currentState()
	asker := c.promptForSelection("Who asked the question?", c.playerNames())
	answerer := c.promptForSelection("Who answered it?", c.namesExcluding(asker))
	filter := c.promptForFilter(gs.Cards)
	side := card.SideNone
	if gs.NumberOfPlayers() == 2 {
		side = c.promptForSide()
	}
	max := len(gs.CardsForFilter(filter))
	count := c.promptForInt(fmt.Sprintf("How many %s cards did %s see? (0-%d): ", filter, answerer, max), 0, max)

	c.appendAction(func(gs state.GameState, ordinal int) state.Action {
		return state.Inquisition{
			Ordinal:             ordinal,
			AskingPlayer:        asker,
			AnsweringPlayer:     answerer,
			Filter:              filter,
			Count:               count,
			IncludingCardOnSide: side,
		}
	})
	C.Info.Println("Question logged.")
}

func (c *CLI) handleAccuse() {
	gs := c.currentState()
	accuser := c.promptForSelection("Who made the accusation?", c.playerNames())
	person := c.promptForCard("Accused person: ", gs.Cards.People())
	location := c.promptForCard("Accused location: ", gs.Cards.Locations())
	weapon := c.promptForCard("Accused weapon: ", gs.Cards.Weapons())

	mystery := state.NewMysteryCardSet(person, location, weapon)
	c.appendAction(func(gs state.GameState, ordinal int) state.Action {
		return state.NewAccusation(ordinal, accuser, mystery)
	})
	C.Info.Println("Accusation logged.")
}

func (c *CLI) handleExamine() {
	gs := c.currentState()
	if gs.NumberOfInformants() == 0 {
		C.Warn.Println("This game has no secret informants.")
		return
	}
	player := c.promptForSelection("Who examined an informant?", c.playerNames())
	var informantNames []string
	for _, si := range gs.SecretInformants {
		informantNames = append(informantNames, si.Name)
	}
	informant := c.promptForSelection("Which informant?", informantNames)

	// Only the user learns the card; other players' looks stay hidden.
	if player == gs.Players[0].Name {
		seen := c.promptForCard("Which card did you see? ", gs.UnallocatedCards())
		c.mu.Lock()
		for _, si := range c.gs.SecretInformants {
			if si.Name == informant {
				c.gs = c.gs.WithSecretInformant(si.WithCard(seen))
				break
			}
		}
		c.mu.Unlock()
	}

	c.appendAction(func(gs state.GameState, ordinal int) state.Action {
		return state.Examination{Ordinal: ordinal, Player: player, Informant: informant}
	})
	C.Info.Println("Examination logged.")
}

func (c *CLI) handleUndo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.gs.Actions) == 0 {
		C.Warn.Println("Nothing to undo.")
		return
	}
	last := c.gs.Actions[len(c.gs.Actions)-1]
	c.gs = c.gs.Removing(last)
	C.Info.Printf("Removed: %s\n", describeAction(last))
}

func (c *CLI) handleSolve() {
	gs := c.currentState()
	if !gs.IsSolveable() {
		C.Warn.Println("Your two hidden cards must be known before solving.")
		return
	}

	c.mu.Lock()
	c.solvingState = gs
	c.solveActive = true
	c.mu.Unlock()

	C.Info.Println("Solving in the background. Use 'progress' to check on it.")
	go c.solver.Solve(gs)
}

func (c *CLI) handleBest() {
	c.mu.Lock()
	gs := c.gs
	solved := c.solvedState
	possibleStates := c.possibleStates
	c.mu.Unlock()

	if possibleStates == nil {
		C.Warn.Println("Run 'solve' first so there are hypotheses to rank actions against.")
		return
	}
	if solved.ID != gs.ID {
		C.Warn.Println("The game has moved on since the last solve. Run 'solve' again.")
		return
	}

	c.mu.Lock()
	c.evalActive = true
	c.mu.Unlock()
	C.Info.Println("Ranking candidate actions in the background. Use 'progress' to check on it.")
	go c.finder.FindOptimalAction(solved, possibleStates)
}

func (c *CLI) handleProgress() {
	c.mu.Lock()
	solveActive, evalActive := c.solveActive, c.evalActive
	solving, solved := c.solvingState, c.solvedState
	c.mu.Unlock()

	reported := false
	if solveActive {
		if fraction, ok := c.solver.Progress(solving); ok {
			C.Info.Printf("Solve: %.0f%%\n", fraction*100)
			reported = true
		}
	}
	if evalActive {
		if fraction, ok := c.finder.Progress(solved); ok {
			C.Info.Printf("Action scan: %.0f%%\n", fraction*100)
			reported = true
		}
	}
	if !reported {
		C.Info.Println("Nothing is running.")
	}
}

func (c *CLI) handleCancel() {
	c.mu.Lock()
	solveActive, evalActive := c.solveActive, c.evalActive
	solving, solved := c.solvingState, c.solvedState
	c.mu.Unlock()

	if !solveActive && !evalActive {
		C.Info.Println("Nothing to cancel.")
		return
	}
	if solveActive {
		c.solver.Cancel(solving)
	}
	if evalActive {
		c.finder.Cancel(solved)
	}
}

// HandleSolutions receives a finished solve.
func (c *CLI) HandleSolutions(gs state.GameState, solutions []state.Solution, possibleStates []state.PossibleState) {
	c.mu.Lock()
	c.solvedState = gs
	c.possibleStates = possibleStates
	c.solutions = solutions
	c.solveActive = false
	c.mu.Unlock()

	fmt.Println()
	C.Good.Printf("Solve finished: %d hypotheses support %d possible solutions.\n",
		len(possibleStates), len(solutions))
	RenderSolutions(solutions)
}

// HandleFailure receives a solve cancellation.
func (c *CLI) HandleFailure(gs state.GameState, err error) {
	c.mu.Lock()
	c.solveActive = false
	c.mu.Unlock()
	if errors.Is(err, solve.ErrCancelled) {
		C.Warn.Println("\nSolve cancelled.")
		return
	}
	C.Bad.Printf("\nSolve failed: %v\n", err)
}

// HandleOptimalActions receives the current action leaderboard. During a
// streaming scan the full table waits for completion; only a short note is
// printed here.
func (c *CLI) HandleOptimalActions(gs state.GameState, actions []evaluate.PotentialAction) {
	c.mu.Lock()
	c.bestActions = actions
	streaming := c.evalActive && c.cfg.Streaming
	c.mu.Unlock()

	if streaming && len(actions) > 0 {
		C.Info.Printf("\nCurrent best: %s\n", actions[0])
	}
}

// HandleEvaluationError receives the terminal signal of an action scan.
func (c *CLI) HandleEvaluationError(gs state.GameState, err error) {
	c.mu.Lock()
	best := c.bestActions
	c.evalActive = false
	c.mu.Unlock()

	switch {
	case errors.Is(err, evaluate.ErrCompleted):
		fmt.Println()
		C.Good.Println("Action scan finished.")
		RenderActions(best)
	case errors.Is(err, evaluate.ErrCancelled):
		C.Warn.Println("\nAction scan cancelled.")
	default:
		C.Bad.Printf("\nAction scan failed: %v\n", err)
	}
}
