package loader

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"theoremc/internal/schema"
)

// value decodes an argument value. Single-key maps {ref: x} and
// {literal: v} are the explicit wrappers; every other map is data.
func (d *decoder) value(n *yaml.Node, what string) (schema.Value, error) {
	return d.valueOf(n, what, true)
}

// valueOf decodes n; inside a literal wrapper, wrappers is false and
// `ref` and `literal` keys are plain data.
func (d *decoder) valueOf(n *yaml.Node, what string, wrappers bool) (schema.Value, error) {
	n, leave, err := d.enter(n, what)
	if err != nil {
		return schema.Value{}, err
	}
	defer leave()
	v := schema.Value{Pos: d.pos(n)}
	switch n.Kind {
	case yaml.ScalarNode:
		return d.scalarValue(n, what)

	case yaml.SequenceNode:
		v.Kind = schema.ValueList
		v.List = make([]schema.Value, 0, len(n.Content))
		for i, item := range n.Content {
			iv, err := d.valueOf(item, what+"["+itoa(i)+"]", wrappers)
			if err != nil {
				return v, err
			}
			v.List = append(v.List, iv)
		}
		return v, nil

	case yaml.MappingNode:
		fields, err := d.mapping(n, what)
		if err != nil {
			return v, err
		}
		if wrappers && len(fields) == 1 {
			switch fields[0].name {
			case "ref":
				target, err := d.identifier(fields[0].val, what+".ref")
				if err != nil {
					return v, err
				}
				v.Kind, v.Str = schema.ValueRef, target.Value
				return v, nil
			case "literal":
				inner, err := d.valueOf(fields[0].val, what+".literal", false)
				if err != nil {
					return v, err
				}
				v.Kind, v.Inner = schema.ValueLiteral, &inner
				return v, nil
			}
		}
		v.Kind = schema.ValueMap
		v.Map = make([]schema.Entry, 0, len(fields))
		for _, f := range fields {
			ev, err := d.valueOf(f.val, what+"."+f.name, wrappers)
			if err != nil {
				return v, err
			}
			v.Map = append(v.Map, schema.Entry{Key: schema.Text{Value: f.name, Pos: d.pos(f.key)}, Value: ev})
		}
		return v, nil
	}
	return v, d.invalidType(n, what, "a value")
}

func (d *decoder) scalarValue(n *yaml.Node, what string) (schema.Value, error) {
	v := schema.Value{Pos: d.pos(n)}
	switch n.Tag {
	case "!!null":
		return v, d.fail(n, "%s: null values are not permitted in theorem documents", what)
	case "!!bool":
		v.Kind = schema.ValueBool
		if err := n.Decode(&v.Bool); err != nil {
			return v, d.fail(n, "%s: %v", what, err)
		}
	case "!!int":
		v.Kind = schema.ValueInt
		if err := n.Decode(&v.Int); err != nil {
			return v, d.fail(n, "%s: integer %s is out of range for i64", what, n.Value)
		}
	case "!!float":
		v.Kind = schema.ValueFloat
		if err := n.Decode(&v.Float); err != nil {
			return v, d.fail(n, "%s: %v", what, err)
		}
	case "!!str", "!!timestamp", "!!binary":
		// timestamps and binary stay as the author wrote them
		v.Kind, v.Str = schema.ValueString, n.Value
	default:
		return v, d.fail(n, "%s: unsupported YAML tag %s on %s", what, n.Tag, strconv.Quote(n.Value))
	}
	return v, nil
}
