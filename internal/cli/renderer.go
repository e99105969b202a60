package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mystery-copilot/internal/card"
	"mystery-copilot/internal/evaluate"
	"mystery-copilot/internal/state"
)

// C holds pre-configured color objects for printing to the console.
var C = struct {
	Good, Bad, Info, Warn, Header, Prompt *color.Color
}{
	Good:   color.New(color.FgGreen),
	Bad:    color.New(color.FgRed),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
}

// cardColors maps each card color to a terminal color for display.
var cardColors = map[card.Color]*color.Color{
	card.Purple: color.New(color.FgMagenta),
	card.Pink:   color.New(color.FgHiMagenta),
	card.Red:    color.New(color.FgRed),
	card.Green:  color.New(color.FgGreen),
	card.Yellow: color.New(color.FgHiYellow),
	card.Blue:   color.New(color.FgBlue),
	card.Orange: color.New(color.FgHiRed),
	card.White:  color.New(color.FgHiWhite),
	card.Brown:  color.New(color.FgYellow),
	card.Gray:   color.New(color.FgHiBlack),
}

// ColorizeCard returns a card name colored by the card's own color.
func ColorizeCard(c card.Card) string {
	if c == "" {
		return "?"
	}
	if col, ok := cardColors[c.Color()]; ok {
		return col.Sprint(c.Name())
	}
	return c.Name()
}

// RenderSolutions displays the ranked solution distribution in a table.
func RenderSolutions(solutions []state.Solution) {
	if len(solutions) == 0 {
		C.Warn.Println("No solutions remain. Check the logged actions for a mistake.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Possible Solutions")
	t.AppendHeader(table.Row{"#", "Person", "Location", "Weapon", "Probability"})
	for i, s := range solutions {
		t.AppendRow(table.Row{
			i + 1,
			ColorizeCard(s.Person),
			ColorizeCard(s.Location),
			ColorizeCard(s.Weapon),
			fmt.Sprintf("%.2f%%", s.Probability*100),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

// RenderActions displays the best-ranked candidate actions in a table.
func RenderActions(actions []evaluate.PotentialAction) {
	if len(actions) == 0 {
		C.Warn.Println("No actions could be ranked.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Most Informative Actions")
	t.AppendHeader(table.Row{"#", "Action"})
	for i, a := range actions {
		t.AppendRow(table.Row{i + 1, a.String()})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	t.Render()
}

// RenderGameState displays the players, informants, and action log.
func RenderGameState(gs state.GameState) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Players")
	header := table.Row{"Player", "Left", "Right", "Person", "Location", "Weapon"}
	if gs.IsTrackingMagnifyingGlasses() {
		header = append(header, "Glasses")
	}
	t.AppendHeader(header)
	for _, p := range gs.Players {
		row := table.Row{
			p.Name,
			ColorizeCard(p.Hidden.Left),
			ColorizeCard(p.Hidden.Right),
			ColorizeCard(p.Mystery.Person),
			ColorizeCard(p.Mystery.Location),
			ColorizeCard(p.Mystery.Weapon),
		}
		if gs.IsTrackingMagnifyingGlasses() {
			row = append(row, p.MagnifyingGlasses)
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.Render()

	if len(gs.SecretInformants) > 0 {
		it := table.NewWriter()
		it.SetOutputMirror(os.Stdout)
		it.SetTitle("Secret Informants")
		it.AppendHeader(table.Row{"Informant", "Card"})
		for _, si := range gs.SecretInformants {
			it.AppendRow(table.Row{si.Name, ColorizeCard(si.Card)})
		}
		it.SetStyle(table.StyleRounded)
		it.Style().Title.Align = text.AlignCenter
		it.Render()
	}

	if len(gs.Actions) > 0 {
		at := table.NewWriter()
		at.SetOutputMirror(os.Stdout)
		at.SetTitle("Action Log")
		at.AppendHeader(table.Row{"#", "Action"})
		for _, a := range gs.Actions {
			at.AppendRow(table.Row{a.ActionOrdinal(), describeAction(a)})
		}
		at.SetStyle(table.StyleRounded)
		at.Style().Title.Align = text.AlignCenter
		at.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
		at.Render()
	}
}

func describeAction(a state.Action) string {
	switch action := a.(type) {
	case state.Accusation:
		return fmt.Sprintf("%s accused %s, %s, %s",
			action.AccusingPlayer,
			ColorizeCard(action.Accusation.Person),
			ColorizeCard(action.Accusation.Location),
			ColorizeCard(action.Accusation.Weapon))
	case state.Inquisition:
		description := fmt.Sprintf("%s asked %s about %s, saw %d",
			action.AskingPlayer, action.AnsweringPlayer, action.Filter, action.Count)
		if action.IncludingCardOnSide != card.SideNone {
			description += fmt.Sprintf(" (including %s card)", action.IncludingCardOnSide)
		}
		return description
	case state.Examination:
		return fmt.Sprintf("%s examined informant %s", action.Player, action.Informant)
	}
	return fmt.Sprintf("%v", a)
}
