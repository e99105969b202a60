package state

import (
	"fmt"
	"sort"

	"mystery-copilot/internal/card"
)

// Solution is one concrete candidate for the true mystery, with the fraction
// of surviving hypotheses that support it.
type Solution struct {
	Person      card.Card
	Location    card.Card
	Weapon      card.Card
	Probability float64
}

// NewSolution builds a solution, checking card categories and probability
// range. Violations are programming errors.
func NewSolution(person, location, weapon card.Card, probability float64) Solution {
	if !person.IsPerson() {
		panic(fmt.Sprintf("state: solution person %q is not a person", person))
	}
	if !location.IsLocation() {
		panic(fmt.Sprintf("state: solution location %q is not a location", location))
	}
	if !weapon.IsWeapon() {
		panic(fmt.Sprintf("state: solution weapon %q is not a weapon", weapon))
	}
	if probability < 0 || probability > 1 {
		panic(fmt.Sprintf("state: solution probability %f out of range", probability))
	}
	return Solution{Person: person, Location: location, Weapon: weapon, Probability: probability}
}

// Cards returns the three cards of the solution.
func (s Solution) Cards() card.Set {
	return card.NewSet(s.Person, s.Location, s.Weapon)
}

// Key identifies the triple regardless of probability.
func (s Solution) Key() string {
	return fmt.Sprintf("%s/%s/%s", s.Person, s.Location, s.Weapon)
}

// Less orders solutions by (probability, person, location, weapon).
func (s Solution) Less(other Solution) bool {
	if s.Probability != other.Probability {
		return s.Probability < other.Probability
	}
	if s.Person != other.Person {
		return s.Person.Less(other.Person)
	}
	if s.Location != other.Location {
		return s.Location.Less(other.Location)
	}
	return s.Weapon.Less(other.Weapon)
}

// SortSolutions orders solutions by descending probability, most likely
// first, with the card ordering breaking ties deterministically.
func SortSolutions(solutions []Solution) {
	sort.Slice(solutions, func(i, j int) bool { return solutions[j].Less(solutions[i]) })
}
