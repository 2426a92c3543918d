package garden

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// constSource always yields the same value, so every candidate is identical.
type constSource uint64

func (c constSource) Uint64() uint64 { return uint64(c) }

func TestLookupArchetype(t *testing.T) {
	assert.Equal(t, Archetype{Color: "#FFD700", Shape: "flower", GrowthRate: 1.2}, LookupArchetype("joy"))
	assert.Equal(t, Archetype{Color: "#87CEEB", Shape: "straight", GrowthRate: 1.0}, LookupArchetype("calm"))

	neutral := Archetype{Color: "#8B4513", Shape: "basic", GrowthRate: 1.0}
	for _, label := range []string{LabelPositive, LabelNegative, LabelNeutral, "", "JOY"} {
		assert.Equal(t, neutral, LookupArchetype(label), label)
	}
}

func TestFoldHealth(t *testing.T) {
	assert.InDelta(t, 0.4, FoldHealth(0.5, -1.0), 1e-9)
	assert.Equal(t, 0.0, FoldHealth(0.05, -1.0))
	assert.Equal(t, 1.0, FoldHealth(0.97, 1.0))
	assert.InDelta(t, 0.55, FoldHealth(0.5, 0.5), 1e-9)
}

func TestHealthDelta(t *testing.T) {
	assert.InDelta(t, 0.1, HealthDelta(1), 1e-9)
	assert.InDelta(t, -0.05, HealthDelta(-0.5), 1e-9)
	assert.Zero(t, HealthDelta(0))

	// the delta is unclamped; the fold clamps
	assert.InDelta(t, -0.1, HealthDelta(-1), 1e-9)
	assert.Equal(t, 0.0, FoldHealth(0.05, -1))
}

func TestFoldHealth_AlwaysInRange(t *testing.T) {
	healths := []float64{-3, -1, 0, 0.05, 0.5, 0.95, 1, 7}
	sentiments := []float64{-100, -1, -0.3, 0, 0.3, 1, 100}
	for _, h := range healths {
		for _, s := range sentiments {
			got := FoldHealth(h, s)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		}
	}
}

func TestFoldHealth_ZeroSentimentIdempotent(t *testing.T) {
	for _, h := range []float64{0, 0.25, 0.5, 1} {
		once := FoldHealth(h, 0)
		assert.Equal(t, once, FoldHealth(once, 0))
		assert.Equal(t, h, once)
	}
}

func TestFoldHealth_RepeatedFoldsStayBounded(t *testing.T) {
	h := 0.5
	for i := 0; i < 100; i++ {
		h = FoldHealth(h, 1)
	}
	assert.Equal(t, 1.0, h)
	for i := 0; i < 100; i++ {
		h = FoldHealth(h, -1)
	}
	assert.Equal(t, 0.0, h)
}

func TestGenerate_PositiveEmptyGarden(t *testing.T) {
	g := NewGenerator(NewPlacer(rand.NewPCG(1, 2)))
	got := g.Generate(model.EmotionAnalysis{EmotionLabel: LabelPositive, SentimentScore: 1.0, Intensity: 0.7}, nil)

	assert.Equal(t, LabelPositive, got.Archetype)
	assert.InDelta(t, 1.02, got.Params.Size, 1e-9)
	assert.Equal(t, "#8B4513", got.Params.Color)
	assert.Equal(t, "basic", got.Params.Shape)
	assert.Equal(t, 1.0, got.Params.GrowthRate)
	assert.Zero(t, got.Position.Y)
	assert.InDelta(t, 0, got.Position.X, GardenHalfExtent)
	assert.InDelta(t, 0, got.Position.Z, GardenHalfExtent)
}

func TestPlantSize(t *testing.T) {
	assert.InDelta(t, 0.4, PlantSize(model.EmotionAnalysis{SentimentScore: -1, Intensity: 0}), 1e-9)
	assert.InDelta(t, 0.75, PlantSize(model.EmotionAnalysis{SentimentScore: 0, Intensity: 0.5}), 1e-9)
	assert.InDelta(t, 1.2, PlantSize(model.EmotionAnalysis{SentimentScore: 0.5, Intensity: 1}), 1e-9)
}

func TestPlace_SparseGardenKeepsSpacing(t *testing.T) {
	existing := []model.Position{
		{X: -6, Z: -6}, {X: 0, Z: -6}, {X: 6, Z: -6},
		{X: -6, Z: 0}, {X: 0, Z: 0}, {X: 6, Z: 0},
		{X: -6, Z: 6}, {X: 0, Z: 6}, {X: 6, Z: 6},
	}
	p := NewPlacer(rand.NewPCG(42, 7))
	for i := 0; i < 200; i++ {
		pos := p.Place(existing)
		require.False(t, collides(pos, existing), "attempt %d collided at %+v", i, pos)
		require.Zero(t, pos.Y)
	}
}

func TestPlace_ExhaustedReturnsLastCandidate(t *testing.T) {
	// Every candidate is the same point, and that point is occupied.
	p := NewPlacer(constSource(1 << 63))
	first := p.candidate()
	got := p.Place([]model.Position{first})

	assert.Equal(t, first, got)
}

func TestPlace_DenseGardenStaysInBounds(t *testing.T) {
	var existing []model.Position
	for x := -8.0; x <= 8; x += 2 {
		for z := -8.0; z <= 8; z += 2 {
			existing = append(existing, model.Position{X: x, Z: z})
		}
	}
	p := NewPlacer(rand.NewPCG(3, 4))
	pos := p.Place(existing)

	assert.LessOrEqual(t, pos.X, GardenHalfExtent)
	assert.GreaterOrEqual(t, pos.X, -GardenHalfExtent)
	assert.LessOrEqual(t, pos.Z, GardenHalfExtent)
	assert.GreaterOrEqual(t, pos.Z, -GardenHalfExtent)
}

func TestPlace_ConcurrentUse(t *testing.T) {
	g := NewGenerator(NewPlacer(rand.NewPCG(5, 6)))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = g.Generate(model.EmotionAnalysis{EmotionLabel: LabelNeutral}, nil)
			}
		}()
	}
	wg.Wait()
}

func TestApplyCare(t *testing.T) {
	cases := []struct {
		name         string
		plant        model.PlantInstance
		action       string
		health, grow float64
	}{
		{"water", model.PlantInstance{Health: 0.5, GrowthProgress: 0.2}, ActionWater, 0.6, 0.2},
		{"water caps", model.PlantInstance{Health: 0.95}, ActionWater, 1.0, 0},
		{"meditate", model.PlantInstance{Health: 0.5, GrowthProgress: 0.2}, ActionMeditate, 0.55, 0.3},
		{"journal caps growth", model.PlantInstance{Health: 0.5, GrowthProgress: 0.98}, ActionJournal, 0.5, 1.0},
		{"prune weak plant", model.PlantInstance{Health: 0.3}, ActionPrune, 0.5, 0},
		{"prune healthy plant", model.PlantInstance{Health: 0.8}, ActionPrune, 0.7, 0},
		{"prune at floor", model.PlantInstance{Health: 0.05}, ActionPrune, 0.25, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, g, err := ApplyCare(tc.plant, tc.action)
			require.NoError(t, err)
			assert.InDelta(t, tc.health, h, 1e-9)
			assert.InDelta(t, tc.grow, g, 1e-9)
			assert.GreaterOrEqual(t, g, tc.plant.GrowthProgress)
		})
	}
}

func TestApplyCare_UnknownAction(t *testing.T) {
	_, _, err := ApplyCare(model.PlantInstance{Health: 0.5}, "sing")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
}
