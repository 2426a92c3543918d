package garden

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// Placement bounds and spacing.
const (
	GardenHalfExtent = 8.0
	MinPlantDistance = 2.0
	MaxPlaceAttempts = 50
)

// Placer picks positions for new plants. It is safe for concurrent use.
type Placer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlacer returns a Placer drawing from src. A nil src uses the runtime's
// shared generator, which is not reproducible.
func NewPlacer(src rand.Source) *Placer {
	if src == nil {
		return &Placer{}
	}
	return &Placer{rng: rand.New(src)}
}

func (p *Placer) float64() float64 {
	if p.rng == nil {
		return rand.Float64()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64()
}

func (p *Placer) candidate() model.Position {
	return model.Position{
		X: (p.float64() - 0.5) * 2 * GardenHalfExtent,
		Y: 0,
		Z: (p.float64() - 0.5) * 2 * GardenHalfExtent,
	}
}

// Place returns a position at least MinPlantDistance away from every existing
// position in the x-z plane. After MaxPlaceAttempts candidates it gives up and
// returns the last one, which may collide.
func (p *Placer) Place(existing []model.Position) model.Position {
	var pos model.Position
	for attempt := 0; attempt < MaxPlaceAttempts; attempt++ {
		pos = p.candidate()
		if !collides(pos, existing) {
			return pos
		}
	}
	return pos
}

func collides(pos model.Position, existing []model.Position) bool {
	for _, e := range existing {
		if planarDistance(pos, e) < MinPlantDistance {
			return true
		}
	}
	return false
}

func planarDistance(a, b model.Position) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}
