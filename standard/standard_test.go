package standard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/solid"
)

func requirePart(t *testing.T, m *solid.Mesh) {
	t.Helper()
	require.NoError(t, m.Check(solid.DefaultTolerance()))
	require.True(t, m.IsClosed(), "part has %d open edges", len(m.OpenEdges()))
	assert.Positive(t, m.Volume())
}

func TestNutM6(t *testing.T) {
	m, err := Nut(6)
	require.NoError(t, err)
	requirePart(t, m)

	// EN ISO 4032 M6: width across flats 10, height 5.2, bore 6.
	box := m.Box()
	assert.InDelta(t, 5.2, box.Size().Z, 1e-6)

	// Volume sits between the full hexagonal prism minus the bore and
	// something clearly nonzero; the bore and chamfers both remove material.
	flats := 10.0
	circum := flats / 2 / math.Cos(math.Pi/6)
	prism := 3 * math.Sqrt(3) / 2 * circum * circum * 5.2
	bore := math.Pi * 3 * 3 * 5.2
	assert.Less(t, m.Volume(), prism-bore+1)
	assert.Greater(t, m.Volume(), prism/3)
}

func TestNutUnknownDiameter(t *testing.T) {
	_, err := Nut(6.7)
	require.Error(t, err)
}

func TestHexnutCustom(t *testing.T) {
	m, err := Hexnut(4, 8, 3)
	require.NoError(t, err)
	requirePart(t, m)

	// Less material than the full hexagonal prism of the same footprint.
	circum := 4.0 / math.Cos(math.Pi/6)
	prism := 3 * math.Sqrt(3) / 2 * circum * circum * 3
	assert.Less(t, m.Volume(), prism)
}

func TestWasherM6(t *testing.T) {
	m, err := Washer(6)
	require.NoError(t, err)
	requirePart(t, m)

	// ISO 7089 M6: interior 6.4, exterior 12, thickness 1.6.
	box := m.Box()
	assert.InDelta(t, 1.6, box.Size().Z, 1e-9)
	assert.InDelta(t, 12, box.Size().X, 0.1)
}

func TestWasherCustomValidates(t *testing.T) {
	_, err := WasherCustom(10, 8, 1)
	require.Error(t, err, "exterior smaller than interior must be rejected")
}

func TestScrewHeads(t *testing.T) {
	for _, head := range []Head{HeadHex, HeadSocket, HeadButton} {
		t.Run(string(head), func(t *testing.T) {
			m, err := Screw(4, 16, head)
			require.NoError(t, err)
			requirePart(t, m)

			box := m.Box()
			// Shank reaches 16 below zero, head sits above.
			assert.InDelta(t, -16, box.Min.Z, 1e-6)
			assert.Positive(t, box.Max.Z)
		})
	}
}

func TestScrewRejectsBadArguments(t *testing.T) {
	_, err := Screw(0, 10, HeadHex)
	require.Error(t, err)
	_, err = Screw(4, 10, Head("wing"))
	require.Error(t, err)
}

func TestCoilspring(t *testing.T) {
	m, err := CoilspringCompression(20, 5, 0.8)
	require.NoError(t, err)
	requirePart(t, m)

	box := m.Box()
	// Free length along Z, coil diameter across.
	assert.InDelta(t, 20, box.Size().Z, 1.0)
	assert.InDelta(t, 5+0.8, box.Size().X, 0.5)
}

func TestCoilspringDefaults(t *testing.T) {
	m, err := CoilspringCompression(20, 0, 0)
	require.NoError(t, err)
	requirePart(t, m)
}
