package schema

import (
	"theoremc/internal/source"
)

type StepKind uint8

const (
	StepInvalid StepKind = iota
	StepCall             // {call: ActionCall}
	StepMust             // {must: ActionCall}
	StepMaybe            // {maybe: MaybeBlock}
)

var stepKindNames = [...]string{
	StepInvalid: "invalid",
	StepCall:    "call",
	StepMust:    "must",
	StepMaybe:   "maybe",
}

func (k StepKind) String() string {
	if int(k) < len(stepKindNames) {
		return stepKindNames[k]
	}
	return "invalid"
}

// Step is exactly one of call, must or maybe.
type Step struct {
	Kind  StepKind
	Pos   source.Pos
	Call  *ActionCall // StepCall and StepMust
	Maybe *MaybeBlock // StepMaybe
}

// MaybeBlock is a branch the verifier may or may not take.
type MaybeBlock struct {
	Because Text
	Do      []Step
	Pos     source.Pos
}

// ActionCall invokes a dotted action with named arguments.
type ActionCall struct {
	Action Text
	Args   []Arg
	As     *Text // optional result binding
	Pos    source.Pos
}

// Arg is one entry of an ActionCall's args mapping, in source order.
type Arg struct {
	Name  Text
	Value Value
}

func (s *Step) walk(visit func(*ActionCall)) {
	switch s.Kind {
	case StepCall, StepMust:
		if s.Call != nil {
			visit(s.Call)
		}
	case StepMaybe:
		if s.Maybe != nil {
			for i := range s.Maybe.Do {
				s.Maybe.Do[i].walk(visit)
			}
		}
	}
}
