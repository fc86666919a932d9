package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/teemow/tasklistfewer/internal/diffview"
	"github.com/teemow/tasklistfewer/internal/tasklist"
)

const legend = `  y - remove the fences around this block
  n - keep this block as it is
  a - remove this one and all remaining blocks without asking
  d - keep this and all remaining blocks, finish this issue
  q - quit, leaving this and all remaining issues untouched
  ? - show this help`

// Prompter asks the operator about one block at a time. It implements
// tasklist.DecideFunc via its Decide method.
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	renderer *diffview.Renderer
}

// New creates a Prompter reading answers from in and writing prompts to out.
func New(in io.Reader, out io.Writer, color bool) *Prompter {
	return &Prompter{
		in:       bufio.NewReader(in),
		out:      out,
		renderer: diffview.NewRenderer(color),
	}
}

// Decide renders the review and blocks until the operator picks a decision.
// Help requests and unrecognized input loop without returning. Reaching end
// of input is treated as quitting the run.
func (p *Prompter) Decide(r tasklist.Review) (tasklist.Decision, error) {
	if r.Label != "" {
		fmt.Fprintf(p.out, "\n%s: tasklist block %d of %d\n\n", r.Label, r.Index, r.Total)
	} else {
		fmt.Fprintf(p.out, "\ntasklist block %d of %d\n\n", r.Index, r.Total)
	}
	fmt.Fprint(p.out, p.renderer.Render(r.OldText, r.NewText))

	for {
		fmt.Fprint(p.out, "\nRemove this tasklist block? [y,n,a,d,q,?] ")

		line, err := p.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("failed to read decision: %w", err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if err == io.EOF && answer == "" {
			// Input is gone; treat it like the operator quitting.
			fmt.Fprintln(p.out, "q")
			return tasklist.Quit, nil
		}

		switch answer {
		case "y":
			return tasklist.Accept, nil
		case "n":
			return tasklist.Reject, nil
		case "a":
			return tasklist.AcceptRest, nil
		case "d":
			return tasklist.AbortRest, nil
		case "q":
			return tasklist.Quit, nil
		case "?":
			fmt.Fprintln(p.out, legend)
		default:
			fmt.Fprintf(p.out, "unrecognized answer %q\n", answer)
		}

		if err == io.EOF {
			return tasklist.Quit, nil
		}
	}
}
