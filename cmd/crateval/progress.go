package main

import (
	"fmt"
	"io"
	"time"

	"github.com/crateval-dev/crateval/internal/domain/validation"
)

// progressSubscriber prints per-check progress to stderr during a
// table-format run. Checks of hidden requirements still execute and
// still count against the verdict, but they are left out of the
// progress display.
type progressSubscriber struct {
	writer io.Writer
	total  int
	done   int
	hidden bool
}

func newProgressSubscriber(w io.Writer, totalChecks int) *progressSubscriber {
	return &progressSubscriber{writer: w, total: totalChecks}
}

//nolint:errcheck // progress output is best-effort
func (p *progressSubscriber) OnEvent(e validation.Event) {
	switch e.Type {
	case validation.RequirementStart:
		p.hidden = e.Requirement != nil && e.Requirement.Hidden

	case validation.CheckEnd:
		if p.hidden || e.Check == nil {
			return
		}
		p.done++
		marker := "✓"
		if e.Passed != nil && !*e.Passed {
			marker = "✗"
		}
		fmt.Fprintf(p.writer, "[%d/%d] %s %s\n", p.done, p.total, marker, e.Check.Name())

	case validation.ValidationEnd:
		if e.Result != nil {
			fmt.Fprintf(p.writer, "checked %d of %d in %s\n",
				p.done, p.total, e.Result.Duration().Round(time.Millisecond))
		}
	}
}
