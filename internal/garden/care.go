package garden

import "github.com/DavideLicci/MindGarden/internal/model"

// Care actions a user can perform on a plant.
const (
	ActionWater    = "water"
	ActionMeditate = "meditate"
	ActionJournal  = "journal"
	ActionPrune    = "prune"
)

// pruneRecoveryBelow is the health under which pruning helps instead of harms.
const pruneRecoveryBelow = 0.5

// ApplyCare returns the plant's health and growth after action. Growth never
// decreases and never exceeds 1; health stays in [0,1].
func ApplyCare(plant model.PlantInstance, action string) (health, growth float64, err error) {
	var dh, dg float64
	switch action {
	case ActionWater:
		dh = 0.1
	case ActionMeditate:
		dh, dg = 0.05, 0.1
	case ActionJournal:
		dg = 0.05
	case ActionPrune:
		if plant.Health < pruneRecoveryBelow {
			dh = 0.2
		} else {
			dh = -0.1
		}
	default:
		return 0, 0, model.Validationf("invalid action %q", action)
	}

	health = clamp01(plant.Health + dh)
	growth = plant.GrowthProgress + dg
	if growth > 1 {
		growth = 1
	}
	if growth < plant.GrowthProgress {
		growth = plant.GrowthProgress
	}
	return health, growth, nil
}
