package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"mystery-copilot/internal/card"
)

func (c *CLI) printUsage() {
	C.Header.Println("\n--- Mystery Co-Pilot ---")
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/mystery copilot")
	fmt.Println("    Set up a game interactively and start the co-pilot.")
	fmt.Println("  go run ./cmd/mystery seed <file>")
	fmt.Println("    Start the co-pilot from a JSON seed describing each player's cards.")
	fmt.Println("\nFlags:")
	fmt.Println("  -loglevel debug    Enable detailed solver tracing.")
	fmt.Println("  -config <file>     Load settings from a JSON file.")
}

func (c *CLI) printHelp() {
	C.Header.Println("\n--- Co-Pilot Help ---")
	fmt.Println("Log actions from your game, then solve to rank the possible solutions.")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Command", "Alias", "Description"})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"ask", "a", "Log a question a player answered with a count."},
		{"accuse", "ac", "Log an accusation and whether it was right."},
		{"examine", "e", "Log a look at a secret informant."},
		{"undo", "u", "Remove the most recently logged action."},
		{"solve", "s", "Rank the possible solutions for the current state."},
		{"best", "b", "Rank candidate actions by expected information."},
		{"progress", "p", "Show progress of the running solve or scan."},
		{"cancel", "c", "Abandon the running solve or scan."},
		{"notes", "n", "Display players, informants, and the action log."},
		{"help", "h", "Show this help message."},
		{"quit", "q", "Exit the co-pilot."},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}

func (c *CLI) promptForString(prompt string) string {
	for {
		C.Prompt.Print(prompt)
		input, err := c.line.Prompt("")
		if err != nil {
			C.Info.Println("\nGoodbye!")
			os.Exit(0)
		}
		trimmed := strings.TrimSpace(input)
		if trimmed != "" {
			c.line.AppendHistory(trimmed)
			return trimmed
		}
	}
}

func (c *CLI) promptForInt(prompt string, min, max int) int {
	for {
		input := c.promptForString(prompt)
		num, err := strconv.Atoi(input)
		if err != nil || num < min || num > max {
			C.Warn.Printf("Invalid input. Please enter a number between %d and %d.\n", min, max)
			continue
		}
		return num
	}
}

func (c *CLI) promptForSelection(prompt string, options []string) string {
	for {
		C.Header.Println("\n" + prompt)
		for i, opt := range options {
			fmt.Printf(" %2d: %s\n", i+1, opt)
		}
		input := c.promptForString("Enter number or name: ")
		if num, err := strconv.Atoi(input); err == nil && num >= 1 && num <= len(options) {
			return options[num-1]
		}
		for _, opt := range options {
			if strings.EqualFold(opt, input) {
				return opt
			}
		}
		C.Warn.Println("Invalid selection.")
	}
}

// promptForCard asks for one card out of the given set, by number or name.
func (c *CLI) promptForCard(prompt string, cards card.Set) card.Card {
	sorted := cards.Sorted()
	C.Header.Println("\n--- Card List ---")
	for i, cd := range sorted {
		fmt.Printf("%2d: %-18s", i+1, cd.Name())
		if (i+1)%3 == 0 {
			fmt.Println()
		}
	}
	fmt.Println()

	for {
		input := c.promptForString(prompt)
		if num, err := strconv.Atoi(input); err == nil && num >= 1 && num <= len(sorted) {
			return sorted[num-1]
		}
		if cd, ok := card.Parse(input); ok && cards.Contains(cd) {
			return cd
		}
		C.Warn.Printf("Card '%s' is not available here.\n", input)
	}
}

// promptForFilter asks for a category or a color in play.
func (c *CLI) promptForFilter(inPlay card.Set) card.Filter {
	var options []string
	for _, cat := range card.AllCategories {
		options = append(options, cat.String())
	}
	for _, col := range inPlay.Colors() {
		options = append(options, col.String())
	}
	for {
		choice := c.promptForSelection("Which cards was the question about?", options)
		if filter, ok := card.ParseFilter(choice); ok {
			return filter
		}
		C.Warn.Printf("'%s' is not a category or a color in play.\n", choice)
	}
}

// promptForSide asks which of the answerer's hidden cards the count included.
func (c *CLI) promptForSide() card.Side {
	for {
		choice := c.promptForSelection("Which hidden card did the count include?",
			[]string{card.SideLeft.String(), card.SideRight.String()})
		if side, ok := card.ParseSide(choice); ok {
			return side
		}
	}
}
