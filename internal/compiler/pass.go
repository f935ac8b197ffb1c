package compiler

import (
	"fmt"
	"time"

	"github.com/you-not-fish/kucode/internal/syntax"
)

// Pass is one phase of the frontend pipeline.
type Pass struct {
	Name string
	Fn   func(u *unit) error
}

// runPasses executes passes on u in order, tracing each one.
func runPasses(u *unit, passes []Pass) error {
	for _, p := range passes {
		if shouldDump(u.opts.DumpBefore, p.Name) {
			dump(u, "before", p.Name)
		}

		start := time.Now()
		err := p.Fn(u)
		u.log.Debug("pass", "name", p.Name, "elapsed", time.Since(start), "diagnostics", len(u.Diagnostics))
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}

		if shouldDump(u.opts.DumpAfter, p.Name) {
			dump(u, "after", p.Name)
		}
	}
	return nil
}

func shouldDump(pattern, name string) bool {
	return pattern == "*" || pattern == name
}

func dump(u *unit, when, pass string) {
	w := u.opts.DumpOut
	if w == nil || u.Program == nil {
		return
	}
	fmt.Fprintf(w, "--- %s %s (%s) ---\n", when, pass, u.Filename)
	syntax.Fprint(w, u.Program)
	fmt.Fprintln(w)
}
