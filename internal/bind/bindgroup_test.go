package bind

import "testing"

func computeReflection(t *testing.T) *Reflection {
	t.Helper()
	raw := []byte(`{
		"entryPoints": [{"stage": "compute"}],
		"parameters": [
			{"name": "input", "space": 0, "binding": {"index": 0}, "type": {"kind": "resource", "access": "read"}},
			{"name": "output", "space": 0, "binding": {"index": 1}, "type": {"kind": "resource", "access": "readWrite"}}
		]
	}`)
	r, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return r
}

func TestBuildBindGroupsResolvesResources(t *testing.T) {
	r := computeReflection(t)
	resources := map[string]any{"input": "buf-in", "output": "buf-out"}

	groups, err := BuildBindGroups(r, resources)
	if err != nil {
		t.Fatalf("BuildBindGroups() error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	g := groups[0]
	if g.Stage != "compute" || len(g.Entries) != 2 {
		t.Fatalf("group = %+v", g)
	}
	byName := map[string]BindEntry{}
	for _, e := range g.Entries {
		byName[e.Name] = e
	}
	if byName["input"].Resource != "buf-in" || byName["input"].Slot != 0 {
		t.Errorf("input entry = %+v", byName["input"])
	}
	if byName["output"].Resource != "buf-out" || byName["output"].Slot != 1 {
		t.Errorf("output entry = %+v", byName["output"])
	}
}

func TestBuildBindGroupsFailsClosedOnMissingResource(t *testing.T) {
	r := computeReflection(t)
	resources := map[string]any{"input": "buf-in"} // "output" missing

	if _, err := BuildBindGroups(r, resources); err == nil {
		t.Fatal("expected error for a parameter with no supplied resource")
	}
}

func TestBuildBindGroupsSkipsNonComputeStages(t *testing.T) {
	raw := []byte(`{
		"entryPoints": [{"stage": "vertex"}],
		"parameters": []
	}`)
	r, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, err := BuildBindGroups(r, nil); err == nil {
		t.Fatal("expected error: no compute entry point present")
	}
}
