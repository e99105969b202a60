// Package state models an immutable snapshot of a game in progress: the
// players, secret informants, in-play cards and the ordered action log, plus
// the fully-concrete hypothesis states derived from them.
package state

import (
	"fmt"

	"mystery-copilot/internal/card"
)

// HiddenCardSet holds a player's two private cards. The zero Card means the
// card is not yet known.
type HiddenCardSet struct {
	Left  card.Card
	Right card.Card
}

// Cards returns the known cards in the set.
func (h HiddenCardSet) Cards() card.Set {
	s := make(card.Set)
	if h.Left != "" {
		s[h.Left] = struct{}{}
	}
	if h.Right != "" {
		s[h.Right] = struct{}{}
	}
	return s
}

// CardOn returns the card on the given side, if known.
func (h HiddenCardSet) CardOn(side card.Side) card.Card {
	if side == card.SideRight {
		return h.Right
	}
	return h.Left
}

// IsComplete reports whether both hidden cards are known.
func (h HiddenCardSet) IsComplete() bool {
	return h.Left != "" && h.Right != ""
}

// WithCardOnLeft returns a copy with the left card replaced.
func (h HiddenCardSet) WithCardOnLeft(c card.Card) HiddenCardSet {
	return HiddenCardSet{Left: c, Right: h.Right}
}

// WithCardOnRight returns a copy with the right card replaced.
func (h HiddenCardSet) WithCardOnRight(c card.Card) HiddenCardSet {
	return HiddenCardSet{Left: h.Left, Right: c}
}

// MysteryCardSet holds the up-to-three cards revealed about a player's
// mystery. The zero Card means the card is not yet known.
type MysteryCardSet struct {
	Person   card.Card
	Location card.Card
	Weapon   card.Card
}

// NewMysteryCardSet builds a mystery set, checking each known card is of the
// right category. Wrong categories are programming errors.
func NewMysteryCardSet(person, location, weapon card.Card) MysteryCardSet {
	if person != "" && !person.IsPerson() {
		panic(fmt.Sprintf("state: %q is not a person", person))
	}
	if location != "" && !location.IsLocation() {
		panic(fmt.Sprintf("state: %q is not a location", location))
	}
	if weapon != "" && !weapon.IsWeapon() {
		panic(fmt.Sprintf("state: %q is not a weapon", weapon))
	}
	return MysteryCardSet{Person: person, Location: location, Weapon: weapon}
}

// IsComplete reports whether all three cards are known.
func (m MysteryCardSet) IsComplete() bool {
	return m.Person != "" && m.Location != "" && m.Weapon != ""
}

// Cards returns the known cards in the mystery.
func (m MysteryCardSet) Cards() card.Set {
	s := make(card.Set)
	for _, c := range []card.Card{m.Person, m.Location, m.Weapon} {
		if c != "" {
			s[c] = struct{}{}
		}
	}
	return s
}

// WithPerson returns a copy with the person replaced.
func (m MysteryCardSet) WithPerson(c card.Card) MysteryCardSet {
	return NewMysteryCardSet(c, m.Location, m.Weapon)
}

// WithLocation returns a copy with the location replaced.
func (m MysteryCardSet) WithLocation(c card.Card) MysteryCardSet {
	return NewMysteryCardSet(m.Person, c, m.Weapon)
}

// WithWeapon returns a copy with the weapon replaced.
func (m MysteryCardSet) WithWeapon(c card.Card) MysteryCardSet {
	return NewMysteryCardSet(m.Person, m.Location, c)
}

// Player is one seat at the table. Players are value types and compare with ==.
type Player struct {
	Name              string
	Hidden            HiddenCardSet
	Mystery           MysteryCardSet
	MagnifyingGlasses int
}

// Cards returns every card known to belong to the player.
func (p Player) Cards() card.Set {
	return p.Mystery.Cards().Union(p.Hidden.Cards())
}

// IsSolveable reports whether enough is known about the player to enumerate
// hypotheses: the acting player needs both hidden cards, everyone else needs
// a complete mystery.
func (p Player) IsSolveable(asFirstPlayer bool) bool {
	if asFirstPlayer {
		return p.Hidden.IsComplete()
	}
	return p.Mystery.IsComplete()
}

// SecretInformant is an undealt card slot, discoverable via an Examination.
// The zero Card means the informant has not been revealed.
type SecretInformant struct {
	Name string
	Card card.Card
}

// WithCard returns a copy with the revealed card replaced.
func (si SecretInformant) WithCard(c card.Card) SecretInformant {
	return SecretInformant{Name: si.Name, Card: c}
}
