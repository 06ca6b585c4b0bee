package launchjson

import (
	"context"
	"strings"

	"github.com/vk/launchenv/internal/ctxlog"
	"github.com/vk/launchenv/internal/dartdefine"
)

// normalizeArgs removes previously injected define pairs from an entry's
// args list and appends the fresh token sequence. An entry without args gets
// an args list containing exactly the fresh tokens. Non-define tokens are
// never inspected and keep their relative order.
func normalizeArgs(ctx context.Context, entry *Object, fresh []string) {
	logger := ctxlog.FromContext(ctx)

	freshValues := make([]*Value, len(fresh))
	for i, tok := range fresh {
		freshValues[i] = String(tok)
	}

	argsVal, ok := entry.Get("args")
	if !ok || argsVal.Kind() != KindArray {
		if ok {
			logger.Warn("Replacing non-list args field.")
		}
		entry.Set("args", Array(freshValues...))
		return
	}

	tokens := argsVal.Items()
	for {
		idx := flagMarkerIndex(tokens)
		if idx == -1 {
			break
		}
		if idx == len(tokens)-1 {
			// Marker with no paired value. Sweep out every token carrying
			// the marker substring so the scan terminates.
			logger.Warn("Malformed args tail recovered; sweeping define-like tokens.", "index", idx)
			tokens = sweepDefineTokens(tokens)
			break
		}
		tokens = append(tokens[:idx], tokens[idx+2:]...)
	}

	argsVal.SetItems(append(tokens, freshValues...))
}

// flagMarkerIndex returns the index of the first token equal to the define
// flag marker, or -1.
func flagMarkerIndex(tokens []*Value) int {
	for i, tok := range tokens {
		if s, ok := tok.AsString(); ok && s == dartdefine.FlagMarker {
			return i
		}
	}
	return -1
}

func sweepDefineTokens(tokens []*Value) []*Value {
	kept := make([]*Value, 0, len(tokens))
	for _, tok := range tokens {
		if s, ok := tok.AsString(); ok && strings.Contains(s, dartdefine.FlagMarker) {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}
