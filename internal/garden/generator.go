package garden

import "github.com/DavideLicci/MindGarden/internal/model"

// Generator composes analysis, archetypes and placement into plant parameters.
type Generator struct {
	placer *Placer
}

// NewGenerator returns a Generator using placer; nil means a default Placer.
func NewGenerator(placer *Placer) *Generator {
	if placer == nil {
		placer = NewPlacer(nil)
	}
	return &Generator{placer: placer}
}

// Generate derives the parameters of the plant grown from analysis.
// The archetype tag is the emotion label verbatim.
func (g *Generator) Generate(analysis model.EmotionAnalysis, existing []model.PlantInstance) model.PlantGenerationParams {
	arch := LookupArchetype(analysis.EmotionLabel)

	positions := make([]model.Position, 0, len(existing))
	for _, p := range existing {
		positions = append(positions, p.Position)
	}

	return model.PlantGenerationParams{
		Archetype: analysis.EmotionLabel,
		Params: model.PlantParams{
			Color:      arch.Color,
			Size:       PlantSize(analysis),
			Shape:      arch.Shape,
			GrowthRate: arch.GrowthRate,
		},
		Position: g.placer.Place(positions),
	}
}

// PlantSize is 0.5..1.0 from intensity, scaled up for positive and down for
// negative sentiment.
func PlantSize(analysis model.EmotionAnalysis) float64 {
	base := 0.5 + analysis.Intensity*0.5
	modifier := 1.0
	switch {
	case analysis.SentimentScore > 0:
		modifier = 1.2
	case analysis.SentimentScore < 0:
		modifier = 0.8
	}
	return base * modifier
}
