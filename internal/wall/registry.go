package wall

import (
	"sort"

	"github.com/parishnet/videowall/internal/core"
)

// ComputeVisible derives the ordered list of wall-renderable participants
// from a raw provider snapshot. The local participant and viewer-only
// identities are excluded; the rest are ordered by display name (byte
// order), ties broken by identity, so pagination never reshuffles tiles
// when an unrelated participant updates.
//
// Callers run this on every provider event. A full recompute is cheaper
// to reason about than incremental patching under interleaved and
// out-of-order events, and the output is always a fresh slice; previous
// snapshots are never mutated.
func ComputeVisible(raw []core.Participant) []core.Participant {
	visible := make([]core.Participant, 0, len(raw))
	for _, p := range raw {
		if p.Local || p.ID.IsViewer() {
			continue
		}
		visible = append(visible, p)
	}
	sort.Slice(visible, func(i, j int) bool {
		if visible[i].Name != visible[j].Name {
			return visible[i].Name < visible[j].Name
		}
		return visible[i].ID < visible[j].ID
	})
	return visible
}
