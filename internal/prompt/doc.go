// Package prompt reads per-block decisions from the operator.
//
// A Prompter shows the before/after rendering of one tasklist block and
// blocks on a single-character answer. Unrecognized input and the "?" help
// request re-prompt without consuming a decision, so the tasklist session
// only ever sees real decisions. Reader and writer are injectable, which
// lets tests drive a whole interactive session from a scripted string.
package prompt
