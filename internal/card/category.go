package card

import "strings"

// Category classifies a card as a person, location or weapon, each split into
// two classes. The declaration order is the canonical sort order.
type Category int

const (
	PersonMan Category = iota
	PersonWoman
	LocationIndoors
	LocationOutdoors
	WeaponRanged
	WeaponMelee
)

// AllCategories lists every category in canonical order.
var AllCategories = []Category{
	PersonMan, PersonWoman,
	LocationIndoors, LocationOutdoors,
	WeaponRanged, WeaponMelee,
}

func (cat Category) String() string {
	switch cat {
	case PersonMan:
		return "Male"
	case PersonWoman:
		return "Female"
	case LocationIndoors:
		return "Indoors"
	case LocationOutdoors:
		return "Outdoors"
	case WeaponRanged:
		return "Ranged"
	case WeaponMelee:
		return "Melee"
	}
	return "Unknown"
}

// ParseCategory returns the category matching the given name.
func ParseCategory(name string) (Category, bool) {
	for _, cat := range AllCategories {
		if strings.EqualFold(cat.String(), name) {
			return cat, true
		}
	}
	return 0, false
}

// Color is one of the ten card colors. The declaration order is the canonical
// sort order.
type Color int

const (
	Purple Color = iota
	Pink
	Red
	Green
	Yellow
	Blue
	Orange
	White
	Brown
	Gray
)

// AllColors lists every color in canonical order.
var AllColors = []Color{Purple, Pink, Red, Green, Yellow, Blue, Orange, White, Brown, Gray}

func (col Color) String() string {
	switch col {
	case Purple:
		return "Purple"
	case Pink:
		return "Pink"
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Yellow:
		return "Yellow"
	case Blue:
		return "Blue"
	case Orange:
		return "Orange"
	case White:
		return "White"
	case Brown:
		return "Brown"
	case Gray:
		return "Gray"
	}
	return "Unknown"
}

// ParseColor returns the color matching the given name.
func ParseColor(name string) (Color, bool) {
	for _, col := range AllColors {
		if strings.EqualFold(col.String(), name) {
			return col, true
		}
	}
	return 0, false
}

// Side identifies one of a player's two hidden cards. Two-player inquiries
// must name which side the answerer includes in their count; SideNone means
// the question covers both.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "none"
}

// ParseSide returns the side matching the given name.
func ParseSide(name string) (Side, bool) {
	switch {
	case strings.EqualFold(name, "left"):
		return SideLeft, true
	case strings.EqualFold(name, "right"):
		return SideRight, true
	}
	return SideNone, false
}
