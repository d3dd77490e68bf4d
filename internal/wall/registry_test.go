package wall

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parishnet/videowall/internal/core"
)

func TestComputeVisibleFiltersLocalAndViewers(t *testing.T) {
	raw := []core.Participant{
		{ID: "church-b", Name: "Bethel"},
		{ID: "viewer-1a2b", Name: "Video Wall"},
		{ID: "me", Name: "Local Wall", Local: true},
		{ID: "church-a", Name: "Agape"},
	}

	visible := ComputeVisible(raw)
	require.Len(t, visible, 2)
	require.Equal(t, core.ParticipantID("church-a"), visible[0].ID)
	require.Equal(t, core.ParticipantID("church-b"), visible[1].ID)
}

func TestComputeVisibleOrderIsDeterministic(t *testing.T) {
	raw := []core.Participant{
		{ID: "z", Name: "Grace"},
		{ID: "a", Name: "Grace"},
		{ID: "m", Name: "Antioch"},
	}

	first := ComputeVisible(raw)
	second := ComputeVisible(raw)
	require.Equal(t, first, second)

	// Same name ties break on identity.
	require.Equal(t, core.ParticipantID("m"), first[0].ID)
	require.Equal(t, core.ParticipantID("a"), first[1].ID)
	require.Equal(t, core.ParticipantID("z"), first[2].ID)
}

func TestComputeVisibleReturnsFreshSlice(t *testing.T) {
	raw := []core.Participant{
		{ID: "b", Name: "B"},
		{ID: "a", Name: "A"},
	}

	visible := ComputeVisible(raw)
	visible[0].Name = "mutated"

	again := ComputeVisible(raw)
	require.Equal(t, "A", again[0].Name)
	require.Equal(t, core.ParticipantID("b"), raw[0].ID, "input order untouched")
}
