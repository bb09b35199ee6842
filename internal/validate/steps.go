package validate

import (
	"fmt"
	"strings"

	"theoremc/internal/schema"
	"theoremc/internal/source"
)

func checkSteps(doc *schema.Document) *failure {
	for i := range doc.Let {
		b := &doc.Let[i]
		if b.Step.Kind == schema.StepMaybe {
			return fail(b.Step.Pos, "Let binding '%s': maybe is not allowed in Let bindings (use call or must)", b.Name.Value)
		}
		if f := actionCall(b.Step.Call, b.Step.Pos); f != nil {
			f.reason = fmt.Sprintf("Let binding '%s': %s", b.Name.Value, f.reason)
			return f
		}
	}
	return stepList(doc.Do, "Do step")
}

// stepList checks steps recursively; path prefixes every reason, for
// example "Do step 2: maybe.do step 1: ...".
func stepList(steps []schema.Step, path string) *failure {
	for i := range steps {
		if f := step(&steps[i], path, i+1); f != nil {
			return f
		}
	}
	return nil
}

func step(s *schema.Step, path string, pos int) *failure {
	switch s.Kind {
	case schema.StepCall, schema.StepMust:
		if f := actionCall(s.Call, s.Pos); f != nil {
			f.reason = fmt.Sprintf("%s %d: %s", path, pos, f.reason)
			return f
		}
		return nil
	case schema.StepMaybe:
		return maybeBlock(s.Maybe, s.Pos, path, pos)
	default:
		return fail(s.Pos, "%s %d: step must have exactly one of call, must, maybe", path, pos)
	}
}

func maybeBlock(m *schema.MaybeBlock, at source.Pos, path string, pos int) *failure {
	if m == nil {
		return fail(at, "%s %d: maybe block is missing", path, pos)
	}
	if blank(m.Because) {
		return fail(m.Because.Pos, "%s %d: maybe.because must be non-empty after trimming", path, pos)
	}
	if len(m.Do) == 0 {
		return fail(m.Pos, "%s %d: maybe.do must contain at least one step", path, pos)
	}
	return stepList(m.Do, fmt.Sprintf("%s %d: maybe.do step", path, pos))
}

// actionCall checks the action name only; argument values are opaque here.
func actionCall(c *schema.ActionCall, at source.Pos) *failure {
	if c == nil {
		return fail(at, "action must be non-empty after trimming")
	}
	if strings.TrimSpace(c.Action.Value) == "" {
		return fail(c.Action.Pos, "action must be non-empty after trimming")
	}
	if reason := schema.ValidateActionName(c.Action.Value); reason != "" {
		return fail(c.Action.Pos, "%s", reason)
	}
	return nil
}
