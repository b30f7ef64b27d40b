package archive

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// NaturalLess orders names with embedded digit runs compared as numbers, so
// "page2.jpg" sorts before "page10.jpg". Letter case is ignored unless the
// names are otherwise equal.
func NaturalLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return natural.Less(la, lb)
	}
	return natural.Less(a, b)
}

// SortNatural sorts names in place using NaturalLess.
func SortNatural(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return NaturalLess(names[i], names[j])
	})
}
