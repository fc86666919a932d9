package tasklist

import (
	"errors"
	"fmt"
)

// ErrQuit signals that the operator chose to abandon the entire run. It is a
// deliberate abort, not a failure: callers must stop processing further
// items and discard any pending edits for the current one.
var ErrQuit = errors.New("aborted by user")

// Decision is the resolution for a single block.
type Decision int

const (
	// Accept strips this block's fences.
	Accept Decision = iota
	// Reject leaves this block untouched and never revisits it.
	Reject
	// AcceptRest accepts this block and every remaining one without
	// further prompting.
	AcceptRest
	// AbortRest rejects this block and everything after it in the
	// current document.
	AbortRest
	// Quit abandons the whole run.
	Quit
)

// Mode selects how blocks are resolved.
type Mode int

const (
	// ModeAutoAccept strips every block without prompting.
	ModeAutoAccept Mode = iota
	// ModeInteractive asks the configured DecideFunc per block.
	ModeInteractive
)

// Review is what a DecideFunc gets to show the operator: the block's context
// window with and without the fences, plus positional information.
type Review struct {
	// OldText is the context window with the block as it stands.
	OldText string
	// NewText is the same window with the fences stripped.
	NewText string
	// Label identifies the document, e.g. "owner/repo#123".
	Label string
	// Index is the 1-based position of this block; Total the block count.
	Index int
	Total int
}

// DecideFunc resolves one block. Implementations may loop internally on
// help requests or unrecognized input; they return once the operator has
// produced a real decision.
type DecideFunc func(Review) (Decision, error)

// Options configures a Resolve pass over one document.
type Options struct {
	Mode Mode
	// ContextLines is the window size around each block in interactive
	// mode. Zero shows the block alone; use DefaultContextLines for the
	// usual five lines.
	ContextLines int
	// Decide supplies the per-block decision in ModeInteractive.
	Decide DecideFunc
	// Label is passed through to each Review.
	Label string
}

// Outcome is the result of one Resolve pass.
type Outcome struct {
	// Changed reports whether NewBody differs from the input document.
	Changed bool
	// NewBody is the edited document; equal to the input when nothing
	// was accepted.
	NewBody string
}

// Resolve scans doc for tasklist blocks and applies one decision per block,
// in document order. Edits accumulate in a working copy while the scan
// positions stay anchored to the unmodified original; the two are reconciled
// through the running length delta of prior replacements, so a rejected
// block never shifts or re-offers a later one.
//
// Resolve returns ErrQuit when the operator quits; the document's pending
// edits are discarded along with it.
func Resolve(doc string, opts Options) (Outcome, error) {
	if opts.Mode == ModeInteractive && opts.Decide == nil {
		return Outcome{}, fmt.Errorf("interactive mode requires a decide function")
	}

	blocks := Scan(doc)
	working := doc
	mode := opts.Mode
	delta := 0

	for i, b := range blocks {
		decision := Accept
		if mode == ModeInteractive {
			w := ContextWindow(doc, b, opts.ContextLines)
			var err error
			decision, err = opts.Decide(Review{
				OldText: w.WithBlock(),
				NewText: w.WithoutBlock(),
				Label:   opts.Label,
				Index:   i + 1,
				Total:   len(blocks),
			})
			if err != nil {
				return Outcome{}, err
			}
		}

		switch decision {
		case Quit:
			return Outcome{}, ErrQuit
		case AbortRest:
			return Outcome{Changed: working != doc, NewBody: working}, nil
		case Reject:
			continue
		case AcceptRest:
			mode = ModeAutoAccept
			fallthrough
		case Accept:
			start := b.Start + delta
			end := b.End + delta
			working = working[:start] + b.Inner + working[end:]
			delta += len(b.Inner) - len(b.Outer)
		default:
			return Outcome{}, fmt.Errorf("unknown decision %d for block %d", decision, i+1)
		}
	}

	return Outcome{Changed: working != doc, NewBody: working}, nil
}
