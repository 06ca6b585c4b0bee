// Package dartdefine builds --dart-define argument token lists from the
// concatenated define-string encoding used by the env-file collaborator.
package dartdefine

import "strings"

// Separator is the literal that introduces each define entry inside an
// EnvDefineString.
const Separator = "--dart-define="

// FlagMarker is the argument-list token that precedes each define value.
const FlagMarker = "--dart-define"

// Pair is one KEY/VALUE define entry. Order of a []Pair is load-bearing:
// the IDE applies last-wins semantics when the list is consumed.
type Pair struct {
	Key   string
	Value string
}

// FormatString encodes pairs into a single EnvDefineString, one
// "--dart-define=KEY=VALUE" segment per pair, concatenated with no joiner.
func FormatString(pairs []Pair) string {
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(Separator)
		b.WriteString(p.Key)
		b.WriteString("=")
		b.WriteString(p.Value)
	}
	return b.String()
}

// BuildArgs splits an EnvDefineString into individual argument tokens,
// alternating FlagMarker and the trimmed entry value. The text before the
// first separator occurrence is discarded. Output order equals split order;
// duplicate keys are emitted twice, deliberately. A string with no separator
// occurrences yields a nil slice, never an error.
func BuildArgs(defineString string) []string {
	parts := strings.Split(defineString, Separator)
	if len(parts) < 2 {
		return nil
	}

	args := make([]string, 0, 2*(len(parts)-1))
	for _, part := range parts[1:] {
		args = append(args, FlagMarker, strings.TrimSpace(part))
	}
	return args
}
