package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotLookups(t *testing.T) {
	snap := NewSnapshot(
		[]HouseMaster{
			{SectorCode: "alhue", House: 1, ConstructionType: "Black Out", UsableAreaM2: 1200},
			{SectorCode: "alhue", House: 2, ConstructionType: "Tradicional", UsableAreaM2: 1100},
			{SectorCode: "la esperanza", House: 1, ConstructionType: "Transversal", UsableAreaM2: 900},
		},
		[]SectorMaster{
			{SectorCode: "alhue", SectorName: "ALHUE", GeographicZone: "zona sur"},
		},
	)

	h, ok := snap.House("alhue", 2)
	require.True(t, ok)
	assert.Equal(t, "Tradicional", h.ConstructionType)
	assert.InDelta(t, 1100.0, h.UsableAreaM2, 1e-9)

	_, ok = snap.House("alhue", 9)
	assert.False(t, ok)

	_, ok = snap.House("la esperanza", 2)
	assert.False(t, ok)

	sec, ok := snap.Sector("alhue")
	require.True(t, ok)
	assert.Equal(t, "zona sur", sec.GeographicZone)

	_, ok = snap.Sector("el carmen")
	assert.False(t, ok)
}

func TestStaticLoader(t *testing.T) {
	snap := NewSnapshot(
		[]HouseMaster{{SectorCode: "alhue", House: 1, ConstructionType: "Black Out", UsableAreaM2: 1000}},
		nil,
	)

	loaded, err := (&StaticLoader{Snapshot: snap}).Load(context.Background())
	require.NoError(t, err)
	_, ok := loaded.House("alhue", 1)
	assert.True(t, ok)
}

func TestStaticLoaderEmpty(t *testing.T) {
	loaded, err := (&StaticLoader{}).Load(context.Background())
	require.NoError(t, err)
	_, ok := loaded.House("alhue", 1)
	assert.False(t, ok)
}
