// Package readability is the fallback content scorer (C5), invoked when
// the config-driven body extractor finds nothing. It runs a retry loop
// over a mutable clone of the prepared document, relaxing one heuristic
// flag per attempt, grounded on the glossary's scoring constants in
// internal/textpattern.
package readability

// flags are the three reductive heuristics disabled in order across
// retry attempts (§4.5).
type flags struct {
	stripUnlikely      bool
	weighClasses       bool
	cleanConditionally bool
}

func allFlags() flags {
	return flags{stripUnlikely: true, weighClasses: true, cleanConditionally: true}
}

// disableNext turns off the next still-enabled flag in listed order,
// reporting whether it found one to disable.
func (f *flags) disableNext() bool {
	switch {
	case f.stripUnlikely:
		f.stripUnlikely = false
	case f.weighClasses:
		f.weighClasses = false
	case f.cleanConditionally:
		f.cleanConditionally = false
	default:
		return false
	}
	return true
}
