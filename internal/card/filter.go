package card

// Filter scopes a question to either a color or a category. It is a closed
// sum: the only implementations are ColorFilter and CategoryFilter.
type Filter interface {
	// Cards returns every card in the full universe matching the filter.
	Cards() Set
	String() string

	isFilter()
}

// ColorFilter matches all cards of one color.
type ColorFilter struct {
	Color Color
}

func (f ColorFilter) isFilter() {}

func (f ColorFilter) Cards() Set {
	return CardsMatchingColor(f.Color)
}

func (f ColorFilter) String() string {
	return f.Color.String()
}

// CategoryFilter matches all cards of one category.
type CategoryFilter struct {
	Category Category
}

func (f CategoryFilter) isFilter() {}

func (f CategoryFilter) Cards() Set {
	return CardsMatchingCategory(f.Category)
}

func (f CategoryFilter) String() string {
	return f.Category.String()
}

// ParseFilter interprets a name as a color or, failing that, a category.
func ParseFilter(name string) (Filter, bool) {
	if col, ok := ParseColor(name); ok {
		return ColorFilter{Color: col}, true
	}
	if cat, ok := ParseCategory(name); ok {
		return CategoryFilter{Category: cat}, true
	}
	return nil, false
}

// FilterLess orders filters deterministically: colors before categories, each
// in canonical order.
func FilterLess(a, b Filter) bool {
	switch left := a.(type) {
	case ColorFilter:
		right, ok := b.(ColorFilter)
		if !ok {
			return true
		}
		return left.Color < right.Color
	case CategoryFilter:
		right, ok := b.(CategoryFilter)
		if !ok {
			return false
		}
		return left.Category < right.Category
	}
	return false
}

// CardsMatching returns all cards in the universe matching the filter.
func CardsMatching(f Filter) Set {
	return f.Cards()
}

// CardsMatchingCategory returns all cards of the given category.
func CardsMatchingCategory(cat Category) Set {
	out := make(Set)
	for c, attrs := range cardAttributes {
		if attrs.category == cat {
			out[c] = struct{}{}
		}
	}
	return out
}

// CardsMatchingColor returns all cards of the given color.
func CardsMatchingColor(col Color) Set {
	out := make(Set)
	for c, attrs := range cardAttributes {
		if attrs.color == col {
			out[c] = struct{}{}
		}
	}
	return out
}
