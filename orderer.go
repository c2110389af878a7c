package cbz2pdf

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ordering selects how extracted entry names are sorted into pages.
type Ordering string

// Ordering strategies.
const (
	// OrderLexical sorts names by byte comparison. Zero-padded names ("001.jpg")
	// sort in page order; unpadded ones do not ("10.jpg" before "2.jpg").
	OrderLexical Ordering = "lexical"

	// OrderNatural compares digit runs by numeric value ("2.jpg" before "10.jpg").
	OrderNatural Ordering = "natural"
)

// Orderings lists the accepted ordering names.
var Orderings = []Ordering{OrderLexical, OrderNatural}

// ParseOrdering validates an ordering name (case-insensitive). Empty means lexical.
func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderLexical:
		return OrderLexical, nil
	case OrderNatural:
		return OrderNatural, nil
	default:
		return "", fmt.Errorf("%w: %q (must be lexical or natural)", ErrInvalidOrdering, s)
	}
}

// Order returns the entry names as a PageSequence.
// The input slice is not modified.
func (o Ordering) Order(names []string) (PageSequence, error) {
	if len(names) == 0 {
		return nil, ErrEmptyArchive
	}

	pages := slices.Clone(names)
	switch o {
	case OrderNatural:
		// Collator is not safe for concurrent use
		c := collate.New(language.Und, collate.Numeric)
		slices.SortStableFunc(pages, func(a, b string) int {
			if n := c.CompareString(a, b); n != 0 {
				return n
			}
			// Numerically equal names ("01" and "1") still need a total order
			return strings.Compare(a, b)
		})
	case "", OrderLexical:
		slices.Sort(pages)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrdering, string(o))
	}

	return PageSequence(pages), nil
}
