package wire

import (
	"fmt"

	"github.com/typeforge/typeforge/ir"
)

// Option configures codec generation.
type Option func(*config)

type config struct {
	available map[string]ir.TypeDefinition
}

// WithTypes adds named definitions to the available-types set that
// Reference nodes resolve against.
func WithTypes(defs ...ir.TypeDefinition) Option {
	return func(c *config) {
		for _, d := range defs {
			c.available[d.Name] = d
		}
	}
}

// WithSchema adds every definition of s to the available-types set.
func WithSchema(s *ir.Schema) Option {
	return func(c *config) {
		for _, d := range s.Types {
			c.available[d.Name] = d
		}
	}
}

// Codec is the generated serializer/parser pair for one object
// definition. The field plan (numbers, wire types, nested plans) is fixed
// at construction; Serialize and Parse are pure functions over it.
//
// Integer-kinded fields encode as unsigned varints with 32-bit unsigned
// wraparound of negative values. There is no zig-zag or 64-bit encoding;
// values survive a round trip only within the unsigned 32-bit range.
type Codec struct {
	def  ir.TypeDefinition
	plan *messagePlan
}

// NewCodec builds a codec for def. A non-object root is a generation
// error: the wire protocol only frames messages, so there is nothing to
// generate for any other kind.
func NewCodec(def ir.TypeDefinition, opts ...Option) (*Codec, error) {
	obj, ok := def.Type.(*ir.Object)
	if !ok {
		kind := "nil"
		if def.Type != nil {
			kind = def.Type.Kind().String()
		}
		return nil, fmt.Errorf("wire: root type %q must be an object, got %s", def.Name, kind)
	}

	cfg := &config{available: make(map[string]ir.TypeDefinition)}
	for _, opt := range opts {
		opt(cfg)
	}
	if def.Name != "" {
		// the definition can refer back to itself
		cfg.available[def.Name] = def
	}

	b := &planBuilder{available: cfg.available, memo: make(map[string]*messagePlan)}
	var plan *messagePlan
	var err error
	if def.Name != "" {
		plan, err = b.reference(&ir.Reference{Name: def.Name})
	} else {
		plan, err = b.object("(root)", obj, def.FieldNumbers)
	}
	if err != nil {
		return nil, err
	}
	return &Codec{def: def, plan: plan}, nil
}

// Definition returns the IR definition this codec was generated from.
func (c *Codec) Definition() ir.TypeDefinition { return c.def }
