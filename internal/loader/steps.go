package loader

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"theoremc/internal/schema"
)

var stepKeys = []string{"call", "must", "maybe"}

func itoa(i int) string { return strconv.Itoa(i) }

func (d *decoder) letBindings(n *yaml.Node) ([]schema.LetBinding, error) {
	fields, err := d.mapping(n, keyLet)
	if err != nil {
		return nil, err
	}
	out := make([]schema.LetBinding, 0, len(fields))
	for _, f := range fields {
		name, err := d.identifier(f.key, keyLet)
		if err != nil {
			return nil, err
		}
		st, err := d.step(f.val, keyLet+"."+f.name)
		if err != nil {
			return nil, err
		}
		out = append(out, schema.LetBinding{Name: name, Step: st})
	}
	return out, nil
}

func (d *decoder) steps(n *yaml.Node, what string) ([]schema.Step, error) {
	n, leave, err := d.enter(n, what)
	if err != nil {
		return nil, err
	}
	defer leave()
	items, err := d.sequence(n, what)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Step, 0, len(items))
	for i, item := range items {
		st, err := d.step(item, what+"["+itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// step decodes an object with exactly one of call, must or maybe.
func (d *decoder) step(n *yaml.Node, what string) (schema.Step, error) {
	n, leave, err := d.enter(n, what)
	if err != nil {
		return schema.Step{}, err
	}
	defer leave()
	fields, err := d.mapping(n, what)
	if err != nil {
		return schema.Step{}, err
	}
	if err := d.strict(n, what, fields, stepKeys, nil); err != nil {
		return schema.Step{}, err
	}
	switch len(fields) {
	case 0:
		return schema.Step{}, d.fail(n, "%s: step must have exactly one of `call`, `must`, `maybe`", what)
	case 1:
	default:
		return schema.Step{}, d.fail(fields[1].key, "%s: step must have exactly one of `call`, `must`, `maybe`, found `%s` and `%s`",
			what, fields[0].name, fields[1].name)
	}

	f := fields[0]
	st := schema.Step{Pos: d.pos(n)}
	switch f.name {
	case "call", "must":
		st.Kind = schema.StepCall
		if f.name == "must" {
			st.Kind = schema.StepMust
		}
		st.Call, err = d.actionCall(f.val, what+"."+f.name)
	case "maybe":
		st.Kind = schema.StepMaybe
		st.Maybe, err = d.maybe(f.val, what+".maybe")
	}
	if err != nil {
		return schema.Step{}, err
	}
	return st, nil
}

var (
	actionKeys         = []string{"action", "args", "as"}
	actionRequiredKeys = []string{"action", "args"}
	maybeKeys          = []string{"because", "do"}
)

func (d *decoder) actionCall(n *yaml.Node, what string) (*schema.ActionCall, error) {
	n, leave, err := d.enter(n, what)
	if err != nil {
		return nil, err
	}
	defer leave()
	fields, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	if err := d.strict(n, what, fields, actionKeys, actionRequiredKeys); err != nil {
		return nil, err
	}
	ac := &schema.ActionCall{Pos: d.pos(n)}
	for _, f := range fields {
		switch f.name {
		case "action":
			ac.Action, err = d.str(f.val, what+".action")
		case "args":
			ac.Args, err = d.args(f.val, what+".args")
		case "as":
			var as schema.Text
			as, err = d.identifier(f.val, what+".as")
			ac.As = &as
		}
		if err != nil {
			return nil, err
		}
	}
	return ac, nil
}

func (d *decoder) args(n *yaml.Node, what string) ([]schema.Arg, error) {
	fields, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Arg, 0, len(fields))
	for _, f := range fields {
		v, err := d.value(f.val, what+"."+f.name)
		if err != nil {
			return nil, err
		}
		out = append(out, schema.Arg{Name: schema.Text{Value: f.name, Pos: d.pos(f.key)}, Value: v})
	}
	return out, nil
}

func (d *decoder) maybe(n *yaml.Node, what string) (*schema.MaybeBlock, error) {
	n, leave, err := d.enter(n, what)
	if err != nil {
		return nil, err
	}
	defer leave()
	fields, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	if err := d.strict(n, what, fields, maybeKeys, maybeKeys); err != nil {
		return nil, err
	}
	mb := &schema.MaybeBlock{Pos: d.pos(n)}
	for _, f := range fields {
		switch f.name {
		case "because":
			mb.Because, err = d.str(f.val, what+".because")
		case "do":
			mb.Do, err = d.steps(f.val, what+".do")
		}
		if err != nil {
			return nil, err
		}
	}
	return mb, nil
}
