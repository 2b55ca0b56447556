package dom

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"chatbot-backend/internal/telemetry"
)

const (
	report_stroll_step     = "stroll.step"
	report_stroll_debug    = "stroll.debug"
	report_stroll_children = "stroll.children"
	report_stroll_optional = "stroll.optional"
)

var ErrEmptyPath = errors.New("stroll: empty path")

// ErrStructureMismatch matches every *StructureMismatch with errors.Is.
var ErrStructureMismatch = errors.New("structure mismatch")

// Check names the condition of a step that failed.
type Check int

const (
	CheckMissingNode Check = iota + 1
	CheckWrongKind
	CheckWrongTag
	CheckWrongID
	CheckWrongClass
)

func (c Check) String() string {
	switch c {
	case CheckMissingNode:
		return "missing node"
	case CheckWrongKind:
		return "wrong kind"
	case CheckWrongTag:
		return "wrong tag"
	case CheckWrongID:
		return "wrong id"
	case CheckWrongClass:
		return "wrong class"
	}
	return "unknown check"
}

// StructureMismatch is returned when a required step does not hold.
type StructureMismatch struct {
	Site string
	// Step is the position of the failed step in the path.
	Step int
	// Index and Tag are copied from the failed step.
	Index int
	Tag   string
	Check Check
	Want  string
	Got   string
}

func (e *StructureMismatch) Error() string {
	return fmt.Sprintf(
		"stroll %q: step %d ([%d, %q]): %s: want %s, got %s",
		e.Site, e.Step, e.Index, e.Tag, e.Check, e.Want, e.Got,
	)
}

func (e *StructureMismatch) Is(target error) bool {
	return target == ErrStructureMismatch
}

// Stroller walks paths for one site. The zero value reports through slog.
type Stroller struct {
	// Site is a free-form label that only shows up in errors and reports.
	Site string
	// DebugAll reports the full list of children before every step, it is
	// meant for writing new paths.
	DebugAll bool
	Tel      telemetry.API
}

// Stroll is shorthand for a one-off Stroller.
func Stroll(tel telemetry.API, site string, debugAll bool, root []Node, path Path) (*Element, error) {
	return Stroller{Site: site, DebugAll: debugAll, Tel: tel}.Stroll(root, path)
}

// Stroll descends from `root` following `path` and returns the element the
// last step matched.
//
// If a check of an optional step fails the result is (nil, nil) and the rest
// of the path is not evaluated. If a check of a required step fails the
// error is a *StructureMismatch.
func (s Stroller) Stroll(root []Node, path Path) (*Element, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	tel := telemetry.OrDefault(s.Tel)

	siblings := root
	var current *Element
	for i, step := range path {
		if s.DebugAll {
			tel.ReportDebug(report_stroll_children, s.Site, i, describeAll(siblings))
		}

		el, mismatch := s.check(i, step, siblings)
		if mismatch != nil {
			if step.Opts.Optional {
				tel.ReportDebug(report_stroll_optional, s.Site, mismatch.Error())
				return nil, nil
			}
			tel.ReportBroken(report_stroll_step, mismatch)
			return nil, mismatch
		}

		if step.Opts.Debug {
			s.debugUnchecked(tel, i, step, el)
		}

		current = el
		siblings = el.Children
	}
	return current, nil
}

func (s Stroller) check(i int, step Step, siblings []Node) (*Element, *StructureMismatch) {
	fail := func(check Check, want, got string) *StructureMismatch {
		return &StructureMismatch{
			Site:  s.Site,
			Step:  i,
			Index: step.Index,
			Tag:   step.Tag,
			Check: check,
			Want:  want,
			Got:   got,
		}
	}

	if step.Index < 0 || step.Index >= len(siblings) {
		return nil, fail(
			CheckMissingNode,
			fmt.Sprintf("child %d", step.Index),
			fmt.Sprintf("%d children", len(siblings)),
		)
	}
	node := siblings[step.Index]
	el, ok := node.(*Element)
	if !ok {
		got := "nil"
		if node != nil {
			got = node.Kind().String()
		}
		return nil, fail(CheckWrongKind, KindElement.String(), got)
	}
	if el.Tag != step.Tag {
		return nil, fail(CheckWrongTag, fmt.Sprintf("<%s>", step.Tag), fmt.Sprintf("<%s>", el.Tag))
	}
	if step.Opts.ID != "" && el.ID() != step.Opts.ID {
		return nil, fail(CheckWrongID, fmt.Sprintf("id %q", step.Opts.ID), fmt.Sprintf("id %q", el.ID()))
	}
	if step.Opts.Class != "" && !el.HasClass(step.Opts.Class) {
		return nil, fail(
			CheckWrongClass,
			fmt.Sprintf("class token %q", step.Opts.Class),
			fmt.Sprintf("class %q", el.Attrs["class"]),
		)
	}
	return el, nil
}

// debugUnchecked warns about anything on `el` the step made no assertion on.
func (s Stroller) debugUnchecked(tel telemetry.API, i int, step Step, el *Element) {
	if id, ok := el.Attr("id"); ok && step.Opts.ID == "" {
		tel.ReportWarning(report_stroll_debug, s.Site, i, fmt.Sprintf("unchecked id %q", id))
	}
	if class, ok := el.Attr("class"); ok && step.Opts.Class == "" {
		tel.ReportWarning(report_stroll_debug, s.Site, i, fmt.Sprintf("unchecked class %q", class))
	}

	var others []string
	for key := range el.Attrs {
		if key == "id" || key == "class" {
			continue
		}
		others = append(others, key)
	}
	if len(others) > 0 {
		sort.Strings(others)
		tel.ReportWarning(report_stroll_debug, s.Site, i, fmt.Sprintf("unchecked attributes %s", strings.Join(others, ", ")))
	}

	if len(step.Opts.Unrecognized) > 0 {
		tel.ReportWarning(report_stroll_debug, s.Site, i, fmt.Sprintf("unrecognized options %s", strings.Join(step.Opts.Unrecognized, ", ")))
	}
}

func describeAll(nodes []Node) []string {
	labels := make([]string, len(nodes))
	for i, n := range nodes {
		labels[i] = fmt.Sprintf("%d:%s", i, Describe(n))
	}
	return labels
}
