package loader

import (
	"gopkg.in/yaml.v3"

	"theoremc/internal/schema"
	"theoremc/internal/source"
)

var (
	evidenceKeys     = []string{"kani", "verus", "stateright"}
	kaniKeys         = []string{"unwind", "expect", "allow_vacuous", "vacuity_because"}
	kaniRequiredKeys = []string{"unwind", "expect"}
)

func (d *decoder) evidence(n *yaml.Node) (schema.Evidence, error) {
	n = resolve(n)
	ev := schema.Evidence{Pos: d.pos(n)}
	fields, err := d.mapping(n, keyEvidence)
	if err != nil {
		return ev, err
	}
	if err := d.strict(n, keyEvidence, fields, evidenceKeys, nil); err != nil {
		return ev, err
	}
	for _, f := range fields {
		what := keyEvidence + "." + f.name
		switch f.name {
		case "kani":
			ev.Kani, err = d.kani(f.val, what)
		case "verus":
			var v schema.Value
			v, err = d.value(f.val, what)
			ev.Verus = &v
		case "stateright":
			var v schema.Value
			v, err = d.value(f.val, what)
			ev.Stateright = &v
		}
		if err != nil {
			return ev, err
		}
	}
	return ev, nil
}

func (d *decoder) kani(n *yaml.Node, what string) (*schema.KaniEvidence, error) {
	n = resolve(n)
	fields, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	if err := d.strict(n, what, fields, kaniKeys, kaniRequiredKeys); err != nil {
		return nil, err
	}
	k := &schema.KaniEvidence{Pos: d.pos(n)}
	for _, f := range fields {
		fwhat := what + "." + f.name
		switch f.name {
		case "unwind":
			k.Unwind, err = d.u32(f.val, fwhat)
		case "expect":
			err = d.expectation(k, f.val, fwhat)
		case "allow_vacuous":
			var b source.Spanned[bool]
			b, err = d.boolean(f.val, fwhat)
			k.AllowVacuous = &b
		case "vacuity_because":
			var t schema.Text
			t, err = d.str(f.val, fwhat)
			k.VacuityBecause = &t
		}
		if err != nil {
			return nil, err
		}
	}
	return k, nil
}

func (d *decoder) expectation(k *schema.KaniEvidence, n *yaml.Node, what string) error {
	text, err := d.str(n, what)
	if err != nil {
		return err
	}
	e, ok := schema.ParseExpectation(text.Value)
	if !ok {
		return d.fail(resolve(n), "%s: unknown variant `%s`, expected %s", what, text.Value, oneOf(schema.ExpectationNames()))
	}
	k.Expect.Value, k.Expect.Pos = e, text.Pos
	return nil
}
