package bind

import "testing"

func TestParseFlatParameters(t *testing.T) {
	raw := []byte(`{
		"entryPoints": [{"stage": "compute", "threadGroupSize": [64, 1, 1]}],
		"parameters": [
			{"name": "input", "space": 0, "binding": {"index": 0}, "type": {"kind": "resource", "baseShape": "structuredBuffer", "access": "read"}},
			{"name": "output", "space": 0, "binding": {"index": 1}, "type": {"kind": "resource", "baseShape": "structuredBuffer", "access": "readWrite"}}
		]
	}`)

	r, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(r.EntryPoints) != 1 || r.EntryPoints[0].Stage != "compute" {
		t.Fatalf("EntryPoints = %+v", r.EntryPoints)
	}
	if len(r.Parameters) != 2 {
		t.Fatalf("Parameters = %+v, want 2", r.Parameters)
	}
	params := computeEntryParameters(r, r.EntryPoints[0])
	if len(params) != 2 {
		t.Fatalf("computeEntryParameters() = %+v, want 2 leaves", params)
	}
}

func TestParseNestedSpaceGroups(t *testing.T) {
	raw := []byte(`{
		"entryPoints": [{
			"stage": "compute",
			"layout": {
				"parameters": [
					{"space": 0, "parameters": [
						{"name": "input", "binding": {"index": 0}, "type": {"kind": "resource", "access": "read"}}
					]},
					{"space": 1, "parameters": [
						{"name": "output", "binding": {"index": 0}, "type": {"kind": "resource", "access": "readWrite"}}
					]}
				]
			}
		}]
	}`)

	r, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	params := computeEntryParameters(r, r.EntryPoints[0])
	if len(params) != 2 {
		t.Fatalf("computeEntryParameters() = %+v, want 2 leaves", params)
	}
	spaces := map[string]int{}
	for _, p := range params {
		spaces[p.Name] = derefSpace(p.Space)
	}
	if spaces["input"] != 0 || spaces["output"] != 1 {
		t.Errorf("spaces = %+v, want input:0 output:1 (inherited from the enclosing group)", spaces)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{not json`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestParseRejectsSchemaViolation(t *testing.T) {
	// "kind" must be one of the enumerated values; "bogus" must fail.
	raw := []byte(`{
		"parameters": [
			{"name": "x", "binding": {"index": 0}, "type": {"kind": "bogus"}}
		]
	}`)
	if _, err := Parse(raw); err == nil {
		t.Fatal("expected schema validation error for an unrecognized type.kind")
	}
}

func TestParseEntryOwnLayoutWinsOverFlatParameters(t *testing.T) {
	raw := []byte(`{
		"entryPoints": [{
			"stage": "compute",
			"layout": {"parameters": [
				{"name": "fromLayout", "binding": {"index": 0}, "type": {"kind": "resource"}}
			]}
		}],
		"parameters": [
			{"name": "fromFlat", "binding": {"index": 0}, "type": {"kind": "resource"}}
		]
	}`)
	r, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	params := computeEntryParameters(r, r.EntryPoints[0])
	if len(params) != 1 || params[0].Name != "fromLayout" {
		t.Errorf("params = %+v, want the entry point's own layout, not the flat fallback", params)
	}
}
