package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/rustyhook/rustyhook/internal/hook"
)

// Reporter prints per-hook status lines and a final summary, following the
// same fatih/color + mattn/go-isatty pairing the teacher's terminal output
// uses: color.New(...).Sprint for per-status coloring, isatty to decide
// whether ANSI escapes are worth emitting at all.
type Reporter struct {
	w         io.Writer
	useColor  bool
	passColor *color.Color
	failColor *color.Color
	skipColor *color.Color
	errColor  *color.Color
}

// NewReporter builds a Reporter writing to w. Color is enabled only when w
// is a terminal and neither NO_COLOR nor RUSTYHOOK_NO_COLOR is set,
// matching spec.md §6's CLI environment-variable contract.
func NewReporter(w io.Writer) *Reporter {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("RUSTYHOOK_NO_COLOR") != "" {
		useColor = false
	}
	return &Reporter{
		w:         w,
		useColor:  useColor,
		passColor: color.New(color.FgGreen),
		failColor: color.New(color.FgRed),
		skipColor: color.New(color.FgYellow),
		errColor:  color.New(color.FgMagenta),
	}
}

func (r *Reporter) colorFor(o hook.Outcome) *color.Color {
	switch o {
	case hook.OutcomePassed:
		return r.passColor
	case hook.OutcomeFailed:
		return r.failColor
	case hook.OutcomeErrored:
		return r.errColor
	default:
		return r.skipColor
	}
}

func (r *Reporter) label(o hook.Outcome) string {
	switch o {
	case hook.OutcomePassed:
		return "PASSED"
	case hook.OutcomeFailed:
		return "FAILED"
	case hook.OutcomeErrored:
		return "ERRORED"
	default:
		return "SKIPPED"
	}
}

// Result prints a single hook's outcome line.
func (r *Reporter) Result(res hook.HookResult) {
	label := r.label(res.Outcome)
	if r.useColor {
		label = r.colorFor(res.Outcome).Sprint(label)
	}
	if res.Outcome == hook.OutcomeSkipped && res.SkipReason != "" {
		fmt.Fprintf(r.w, "%-8s %s (%s)\n", label, res.HookID, res.SkipReason)
		return
	}
	fmt.Fprintf(r.w, "%-8s %s (%s)\n", label, res.HookID, res.Duration)
}

// Summary prints the run's final tally line.
func (r *Reporter) Summary(report *hook.RunReport) {
	for _, res := range report.Results {
		r.Result(res)
	}
	s := report.Summary
	fmt.Fprintf(r.w, "\n%d passed, %d failed, %d skipped, %d errored\n", s.Passed, s.Failed, s.Skipped, s.Errored)
}
