// Package tasklist locates fenced [tasklist] blocks in issue bodies and
// resolves them into an edited document.
//
// GitHub's tasklist beta wrapped checklists in ```[tasklist] fences. After
// the feature was retired the fences render as literal code blocks, hiding
// the checklist items. This package finds those blocks and strips the fence
// lines while keeping the inner content byte-for-byte.
//
// The package has two halves:
//
//   - Scan finds every block in a document, in document order, keyed by its
//     byte-offset span so that two byte-identical blocks at different
//     positions stay independent.
//   - Resolve walks the scanned blocks and applies a decision per block
//     (accept, reject, accept the rest, abort the rest, or quit the whole
//     run), accumulating accepted edits into a working copy of the document.
//
// Decisions come from an injectable DecideFunc, so interactive prompting
// lives with the caller and the session itself stays free of I/O.
//
// Example usage:
//
//	outcome, err := tasklist.Resolve(body, tasklist.Options{
//	    Mode: tasklist.ModeAutoAccept,
//	})
//	if err != nil {
//	    return err
//	}
//	if outcome.Changed {
//	    // persist outcome.NewBody
//	}
package tasklist
