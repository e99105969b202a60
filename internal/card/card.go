// Package card is the static card oracle: the fixed 30-card universe and its
// category, color and filter classifications. Everything here is pure lookup.
package card

import "strings"

// Card is one of the 30 fixed cards in the game.
type Card string

const (
	Harbor     Card = "harbor"
	Library    Card = "library"
	Market     Card = "market"
	Museum     Card = "museum"
	Park       Card = "park"
	Parlor     Card = "parlor"
	Plaza      Card = "plaza"
	Racecourse Card = "racecourse"
	Railcar    Card = "railcar"
	Theater    Card = "theater"

	Butcher  Card = "butcher"
	Coachman Card = "coachman"
	Countess Card = "countess"
	Dancer   Card = "dancer"
	Duke     Card = "duke"
	Florist  Card = "florist"
	Maid     Card = "maid"
	Nurse    Card = "nurse"
	Officer  Card = "officer"
	Sailor   Card = "sailor"

	Blowgun     Card = "blowgun"
	Bow         Card = "bow"
	Candlestick Card = "candlestick"
	Crossbow    Card = "crossbow"
	Gun         Card = "gun"
	Hammer      Card = "hammer"
	Knife       Card = "knife"
	Poison      Card = "poison"
	Rifle       Card = "rifle"
	Sword       Card = "sword"
)

// attributes holds the static classification of a card.
type attributes struct {
	category Category
	color    Color
}

var cardAttributes = map[Card]attributes{
	Harbor:     {LocationOutdoors, Blue},
	Library:    {LocationIndoors, Red},
	Market:     {LocationOutdoors, Pink},
	Museum:     {LocationIndoors, Yellow},
	Park:       {LocationOutdoors, Green},
	Parlor:     {LocationIndoors, Purple},
	Plaza:      {LocationOutdoors, White},
	Racecourse: {LocationOutdoors, Gray},
	Railcar:    {LocationIndoors, Brown},
	Theater:    {LocationIndoors, Orange},

	Butcher:  {PersonMan, Red},
	Coachman: {PersonMan, Gray},
	Countess: {PersonWoman, Green},
	Dancer:   {PersonWoman, Orange},
	Duke:     {PersonMan, Pink},
	Florist:  {PersonWoman, Brown},
	Maid:     {PersonWoman, Blue},
	Nurse:    {PersonWoman, Yellow},
	Officer:  {PersonMan, Purple},
	Sailor:   {PersonMan, White},

	Blowgun:     {WeaponRanged, Yellow},
	Bow:         {WeaponRanged, Gray},
	Candlestick: {WeaponMelee, White},
	Crossbow:    {WeaponRanged, Pink},
	Gun:         {WeaponRanged, Orange},
	Hammer:      {WeaponMelee, Brown},
	Knife:       {WeaponMelee, Purple},
	Poison:      {WeaponMelee, Red},
	Rifle:       {WeaponRanged, Blue},
	Sword:       {WeaponMelee, Green},
}

// AllCards lists every card, ordered by (color, category, name).
var AllCards = func() []Card {
	cards := make([]Card, 0, len(cardAttributes))
	for c := range cardAttributes {
		cards = append(cards, c)
	}
	sortCards(cards)
	return cards
}()

// Parse returns the card with the given name, case-insensitively.
func Parse(name string) (Card, bool) {
	c := Card(strings.ToLower(strings.TrimSpace(name)))
	_, ok := cardAttributes[c]
	return c, ok
}

// Name returns the capitalized name of the card.
func (c Card) Name() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[0])) + string(c[1:])
}

// Category returns the static category of the card.
func (c Card) Category() Category {
	return cardAttributes[c].category
}

// Color returns the static color of the card.
func (c Card) Color() Color {
	return cardAttributes[c].color
}

// IsPerson reports whether the card is a person.
func (c Card) IsPerson() bool {
	cat := c.Category()
	return cat == PersonMan || cat == PersonWoman
}

// IsLocation reports whether the card is a location.
func (c Card) IsLocation() bool {
	cat := c.Category()
	return cat == LocationIndoors || cat == LocationOutdoors
}

// IsWeapon reports whether the card is a weapon.
func (c Card) IsWeapon() bool {
	cat := c.Category()
	return cat == WeaponRanged || cat == WeaponMelee
}

// Less orders cards globally by (color, category, name) so that every listing
// derived from a set is deterministic.
func (c Card) Less(other Card) bool {
	a, b := cardAttributes[c], cardAttributes[other]
	if a.color != b.color {
		return a.color < b.color
	}
	if a.category != b.category {
		return a.category < b.category
	}
	return c < other
}

// CardSet returns the in-play cards for a game with the given number of
// players. Smaller games drop whole colors from the deck.
func CardSet(playerCount int) Set {
	available := NewSet(AllCards...)
	switch playerCount {
	case 2:
		available = available.Subtracting(CardsMatchingColor(Orange))
		fallthrough
	case 3:
		available = available.Subtracting(CardsMatchingColor(White))
		fallthrough
	case 4:
		available = available.Subtracting(CardsMatchingColor(Brown))
		fallthrough
	case 5:
		available = available.Subtracting(CardsMatchingColor(Gray))
	}
	return available
}
