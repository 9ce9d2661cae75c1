package bind

import "fmt"

// BindEntry is one resolved binding slot: the reflection parameter's
// identity (set/slot/kind/access) plus the concrete resource the calling
// pass supplied for it (spec §4.N: "builds bind-group layouts and
// bind-groups purely from reflection + a name->resource map supplied by
// the pass"). Resource is opaque here; only the device layer on the other
// side of this contract knows its concrete type (a buffer handle, in a
// real backend).
type BindEntry struct {
	Name     string
	Set      int
	Slot     int
	Kind     string // resource | samplerState | constantBuffer
	Access   string // read | readWrite, empty for samplerState
	Resource any
}

// BindGroup is every resolved binding for one compute entry point.
type BindGroup struct {
	Stage   string
	Entries []BindEntry
}

// BuildBindGroups resolves every "compute" entry point in r against
// resources (keyed by reflection parameter name), returning one BindGroup
// per entry point. It fails closed: a parameter with no matching entry in
// resources is an error, not a silently-skipped binding, since a real
// device would refuse to dispatch with an incomplete bind group.
func BuildBindGroups(r *Reflection, resources map[string]any) ([]BindGroup, error) {
	var groups []BindGroup
	for _, ep := range r.EntryPoints {
		if ep.Stage != "compute" {
			continue
		}
		params := computeEntryParameters(r, ep)

		g := BindGroup{Stage: ep.Stage}
		for _, p := range params {
			res, ok := resources[p.Name]
			if !ok {
				return nil, fmt.Errorf("bind: no resource supplied for parameter %q (set %d, slot %d)", p.Name, derefSpace(p.Space), p.Binding.Index)
			}
			g.Entries = append(g.Entries, BindEntry{
				Name:     p.Name,
				Set:      derefSpace(p.Space),
				Slot:     p.Binding.Index,
				Kind:     p.Type.Kind,
				Access:   p.Type.Access,
				Resource: res,
			})
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("bind: reflection document has no compute entry point")
	}
	return groups, nil
}

func derefSpace(space *int) int {
	if space == nil {
		return 0
	}
	return *space
}
