// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseAndDecode checks data against the definition (e.g. "#RuleFile",
// "#Config") of schema and decodes the unified value into T. Errors in the
// user document name the file and the CUE path of the offending field;
// errors in the schema itself are reported as internal errors.
func ParseAndDecode[T any](schema, data []byte, definition string, opts ...Option) (*T, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return nil, err
	}

	unified, err := unify(schema, data, definition, o.filename)
	if err != nil {
		return nil, err
	}

	// Optional fields the document leaves out are not subject to
	// concreteness; they are simply absent from the decoded value.
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, o.filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, o.filename)
	}
	return &out, nil
}

func unify(schema, data []byte, definition, filename string) (cue.Value, error) {
	ctx := cuecontext.New()

	def := ctx.CompileBytes(schema).LookupPath(cue.ParsePath(definition))
	if err := def.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s: %w", definition, err)
	}

	doc := ctx.CompileBytes(data, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return cue.Value{}, FormatError(err, filename)
	}
	return def.Unify(doc), nil
}
