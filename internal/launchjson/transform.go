package launchjson

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/launchenv/internal/ctxlog"
)

var (
	// ErrMalformedDocument reports text that does not parse as JSON after
	// the comment strip.
	ErrMalformedDocument = errors.New("malformed launch document")

	// ErrMissingConfigurations reports a parsed document without a
	// "configurations" list.
	ErrMissingConfigurations = errors.New(`launch document has no "configurations" list`)
)

// Options identifies the configuration entry to update. A nil Name matches —
// and, on the create path, produces — an entry whose name is null or absent.
// A nil Program produces a null program field on a created entry.
type Options struct {
	Name    *string
	Program *string
}

// Transform applies one strip-stale-then-append-fresh pass to every
// configuration entry in raw, creating the target entry first when no entry
// matches opts.Name. It returns the re-encoded document text; the transform
// performs no I/O, so a failure never leaves a partially written document.
func Transform(ctx context.Context, raw string, freshArgs []string, opts Options) (string, error) {
	logger := ctxlog.FromContext(ctx)

	doc, err := Parse(StripLineComments(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	root, ok := doc.AsObject()
	if !ok {
		return "", fmt.Errorf("%w: document root is not an object", ErrMissingConfigurations)
	}
	confs, ok := root.Get("configurations")
	if !ok || confs.Kind() != KindArray {
		return "", ErrMissingConfigurations
	}

	if !hasEntryNamed(confs, opts.Name) {
		name := "<null>"
		if opts.Name != nil {
			name = *opts.Name
		}
		logger.Debug("No matching configuration entry found, creating one.", "name", name)
		confs.Append(newEntry(opts, freshArgs))
	}

	// Every entry gets the normalization pass, including the one just
	// created, so leftover define pairs never accumulate anywhere.
	for _, item := range confs.Items() {
		entry, ok := item.AsObject()
		if !ok {
			continue
		}
		normalizeArgs(ctx, entry, freshArgs)
	}

	return Encode(doc), nil
}

// hasEntryNamed reports whether any configuration entry carries the target
// name. A nil name matches entries whose name field is absent or null.
func hasEntryNamed(confs *Value, name *string) bool {
	for _, item := range confs.Items() {
		entry, ok := item.AsObject()
		if !ok {
			continue
		}
		nameVal, present := entry.Get("name")
		if name == nil {
			if !present || nameVal.Kind() == KindNull {
				return true
			}
			continue
		}
		if !present {
			continue
		}
		if s, isStr := nameVal.AsString(); isStr && s == *name {
			return true
		}
	}
	return false
}

// newEntry synthesizes a launch-kind configuration entry for the Dart
// runtime with the fresh define tokens as its args.
func newEntry(opts Options, freshArgs []string) *Value {
	args := make([]*Value, len(freshArgs))
	for i, tok := range freshArgs {
		args[i] = String(tok)
	}

	entry := NewObject()
	entry.Set("name", stringOrNull(opts.Name))
	entry.Set("request", String("launch"))
	entry.Set("type", String("dart"))
	entry.Set("program", stringOrNull(opts.Program))
	entry.Set("args", Array(args...))
	return ObjectValue(entry)
}

func stringOrNull(s *string) *Value {
	if s == nil {
		return Null()
	}
	return String(*s)
}
