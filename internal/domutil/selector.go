package domutil

import (
	"github.com/andybalholm/cascadia"
)

// cascadiaCompile wraps cascadia.Compile so callers never import it
// directly — C4's body-selector evaluation is the native-traversal
// substitute for XPath (see SPEC_FULL.md §9).
func cascadiaCompile(selector string) (cascadia.Selector, error) {
	return cascadia.Compile(selector)
}
