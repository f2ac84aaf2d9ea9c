package completion

import "golang.org/x/text/cases"

// Fold maps s to its case-folded form for caseless comparison.
func Fold(s string) string {
	// Casers carry state; one per call keeps Fold safe to share.
	return cases.Fold().String(s)
}
