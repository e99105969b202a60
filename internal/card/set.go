package card

import "sort"

// Set is an unordered collection of cards. Sets are treated as immutable:
// every operation returns a new Set and never mutates the receiver.
type Set map[Card]struct{}

// NewSet builds a set from the given cards.
func NewSet(cards ...Card) Set {
	s := make(Set, len(cards))
	for _, c := range cards {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether the card is in the set.
func (s Set) Contains(c Card) bool {
	_, ok := s[c]
	return ok
}

// Union returns a set with the elements of both sets.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}

// Intersecting returns the elements present in both sets.
func (s Set) Intersecting(other Set) Set {
	out := make(Set)
	for c := range s {
		if other.Contains(c) {
			out[c] = struct{}{}
		}
	}
	return out
}

// Subtracting returns the elements of s not present in other.
func (s Set) Subtracting(other Set) Set {
	out := make(Set)
	for c := range s {
		if !other.Contains(c) {
			out[c] = struct{}{}
		}
	}
	return out
}

// IsDisjoint reports whether the two sets share no elements.
func (s Set) IsDisjoint(other Set) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for c := range small {
		if large.Contains(c) {
			return false
		}
	}
	return true
}

// IsSubset reports whether every element of s is in other.
func (s Set) IsSubset(other Set) bool {
	for c := range s {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold exactly the same cards.
func (s Set) Equal(other Set) bool {
	return len(s) == len(other) && s.IsSubset(other)
}

// Matching returns the cards in the set matching the filter.
func (s Set) Matching(f Filter) Set {
	return s.Intersecting(CardsMatching(f))
}

// People returns the person cards in the set.
func (s Set) People() Set {
	out := make(Set)
	for c := range s {
		if c.IsPerson() {
			out[c] = struct{}{}
		}
	}
	return out
}

// Locations returns the location cards in the set.
func (s Set) Locations() Set {
	out := make(Set)
	for c := range s {
		if c.IsLocation() {
			out[c] = struct{}{}
		}
	}
	return out
}

// Weapons returns the weapon cards in the set.
func (s Set) Weapons() Set {
	out := make(Set)
	for c := range s {
		if c.IsWeapon() {
			out[c] = struct{}{}
		}
	}
	return out
}

// Sorted returns the cards in canonical (color, category, name) order.
func (s Set) Sorted() []Card {
	cards := make([]Card, 0, len(s))
	for c := range s {
		cards = append(cards, c)
	}
	sortCards(cards)
	return cards
}

// Colors returns the distinct colors present in the set, in canonical order.
func (s Set) Colors() []Color {
	seen := make(map[Color]struct{})
	for c := range s {
		seen[c.Color()] = struct{}{}
	}
	colors := make([]Color, 0, len(seen))
	for _, col := range AllColors {
		if _, ok := seen[col]; ok {
			colors = append(colors, col)
		}
	}
	return colors
}

func sortCards(cards []Card) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].Less(cards[j]) })
}
