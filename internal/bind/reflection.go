// Package bind implements component N, the reflection-binding bridge to a
// device compute API (spec §4.N): it validates and decodes a shader's
// reflection JSON and builds bind-group layouts from it plus a
// name->resource map supplied by the calling pass. The actual device API
// (uniform/storage buffers, compute pipelines, bind-group objects) is
// assumed to exist on the other side of this contract; this package never
// talks to a device, only to the reflection document and the caller's
// resource map.
package bind

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// reflectionSchema is deliberately permissive: it only pins down the
// fields component N actually reads (spec §6), so a reflection document
// carrying extra vendor-specific fields still validates.
const reflectionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "entryPoints": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["stage"],
        "properties": {
          "stage": { "type": "string" },
          "threadGroupSize": {
            "type": "array",
            "items": { "type": "integer" }
          },
          "layout": {
            "type": "object",
            "properties": {
              "parameters": { "$ref": "#/$defs/parameterList" }
            }
          }
        }
      }
    },
    "parameters": { "$ref": "#/$defs/parameterList" }
  },
  "$defs": {
    "parameterList": {
      "type": "array",
      "items": { "$ref": "#/$defs/parameter" }
    },
    "parameter": {
      "type": "object",
      "properties": {
        "name": { "type": "string" },
        "space": { "type": "integer" },
        "binding": {
          "type": "object",
          "properties": { "index": { "type": "integer" } }
        },
        "type": {
          "type": "object",
          "properties": {
            "kind": { "enum": ["resource", "samplerState", "constantBuffer"] },
            "baseShape": { "type": "string" },
            "access": { "enum": ["read", "readWrite"] }
          }
        },
        "parameters": { "$ref": "#/$defs/parameterList" }
      }
    }
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("reflection.json", strings.NewReader(reflectionSchema)); err != nil {
		panic(fmt.Sprintf("bind: invalid embedded reflection schema: %v", err))
	}
	s, err := c.Compile("reflection.json")
	if err != nil {
		panic(fmt.Sprintf("bind: compiling embedded reflection schema: %v", err))
	}
	return s
}

// Binding is a parameter's binding.index field (spec §6).
type Binding struct {
	Index int `json:"index"`
}

// ParamType is a parameter's type record: kind/baseShape/access (spec §6).
type ParamType struct {
	Kind      string `json:"kind"`
	BaseShape string `json:"baseShape"`
	Access    string `json:"access"`
}

// Parameter is one reflected binding slot, or a space grouping of nested
// parameters (the "nested entryPoints[].layout.parameters[].space/
// .parameters[] tree" form spec §6 describes as an alternative to a flat
// parameters[] list).
type Parameter struct {
	Name       string      `json:"name"`
	Space      *int        `json:"space"`
	Binding    Binding     `json:"binding"`
	Type       ParamType   `json:"type"`
	Parameters []Parameter `json:"parameters"`
}

// IsGroup reports whether p is a space grouping rather than a leaf binding.
func (p Parameter) IsGroup() bool { return len(p.Parameters) > 0 }

// Layout is an entry point's nested parameter tree.
type Layout struct {
	Parameters []Parameter `json:"parameters"`
}

// EntryPoint is one shader entry point's reflection record.
type EntryPoint struct {
	Stage           string  `json:"stage"`
	ThreadGroupSize []int   `json:"threadGroupSize"`
	Layout          *Layout `json:"layout"`
}

// Reflection is the decoded shader reflection document (spec §6).
type Reflection struct {
	EntryPoints []EntryPoint `json:"entryPoints"`
	Parameters  []Parameter  `json:"parameters"` // flat form, used for any entry point that carries no layout of its own
}

// Parse validates raw against the embedded JSON Schema and, only on
// success, decodes it into a Reflection. A schema violation fails with a
// precise JSON-pointer-qualified error instead of a generic unmarshal
// error (SPEC_FULL.md domain stack, santhosh-tekuri/jsonschema).
func Parse(raw []byte) (*Reflection, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("bind: reflection document is not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("bind: reflection document failed schema validation: %w", err)
	}

	var r Reflection
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("bind: decoding reflection document: %w", err)
	}
	return &r, nil
}

// leafParameters walks params depth-first, flattening space groupings into
// their leaf bindings; a group's own Space applies to every descendant
// that doesn't declare its own.
func leafParameters(params []Parameter, inheritedSpace int) []Parameter {
	var out []Parameter
	for _, p := range params {
		space := inheritedSpace
		if p.Space != nil {
			space = *p.Space
		}
		if p.IsGroup() {
			out = append(out, leafParameters(p.Parameters, space)...)
			continue
		}
		if p.Space == nil {
			s := space
			p.Space = &s
		}
		out = append(out, p)
	}
	return out
}

// computeEntryParameters returns an entry point's flattened leaf
// parameters, preferring its own layout tree and falling back to the
// document's flat parameters[] list (spec §6's two alternative shapes).
func computeEntryParameters(r *Reflection, ep EntryPoint) []Parameter {
	if ep.Layout != nil {
		return leafParameters(ep.Layout.Parameters, 0)
	}
	return leafParameters(r.Parameters, 0)
}
