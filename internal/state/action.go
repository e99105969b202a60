package state

import (
	"fmt"

	"mystery-copilot/internal/card"
)

// Action is one entry in the game's action log. It is a closed sum: the only
// implementations are Accusation, Inquisition and Examination. All three are
// comparable value types, so two Action interface values compare equal with
// == exactly when they are the same kind with the same fields.
type Action interface {
	// ActionOrdinal is the position of the action in the log.
	ActionOrdinal() int
	// ActingPlayer is the player the action is attributed to: the accuser,
	// the answering player, or the examiner.
	ActingPlayer() string

	isAction()
}

// Accusation is a player's claim of the full three-card solution.
type Accusation struct {
	Ordinal        int
	AccusingPlayer string
	Accusation     MysteryCardSet
}

// NewAccusation builds an accusation. An incomplete card set is a
// programming error.
func NewAccusation(ordinal int, accusingPlayer string, accusation MysteryCardSet) Accusation {
	if !accusation.IsComplete() {
		panic(fmt.Sprintf("state: accusation by %q is missing cards", accusingPlayer))
	}
	return Accusation{Ordinal: ordinal, AccusingPlayer: accusingPlayer, Accusation: accusation}
}

func (a Accusation) isAction()            {}
func (a Accusation) ActionOrdinal() int   { return a.Ordinal }
func (a Accusation) ActingPlayer() string { return a.AccusingPlayer }

// Cards returns the three cards claimed by the accusation.
func (a Accusation) Cards() card.Set { return a.Accusation.Cards() }

// Inquisition records a question asked of a player and the count they
// answered. In two-player games IncludingCardOnSide names which hidden card
// the answerer counted; otherwise it is card.SideNone.
type Inquisition struct {
	Ordinal             int
	AskingPlayer        string
	AnsweringPlayer     string
	Filter              card.Filter
	Count               int
	IncludingCardOnSide card.Side
}

func (i Inquisition) isAction()            {}
func (i Inquisition) ActionOrdinal() int   { return i.Ordinal }
func (i Inquisition) ActingPlayer() string { return i.AnsweringPlayer }

// Cards returns every card in the universe the question was about.
func (i Inquisition) Cards() card.Set { return i.Filter.Cards() }

// Examination records a player looking at a secret informant.
type Examination struct {
	Ordinal   int
	Player    string
	Informant string
}

func (e Examination) isAction()            {}
func (e Examination) ActionOrdinal() int   { return e.Ordinal }
func (e Examination) ActingPlayer() string { return e.Player }
