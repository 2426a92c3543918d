package insight

import (
	"github.com/google/uuid"

	"github.com/DavideLicci/MindGarden/internal/model"
)

const (
	keeperWindow    = 5
	keeperThreshold = 0.3
)

const (
	keeperWelcome  = "Benvenuto nel tuo giardino! Inizia a condividere i tuoi pensieri per vedere crescere le tue piante digitali."
	keeperBlooming = "Il tuo giardino sta fiorendo! Le tue piante positive stanno crescendo rigogliose. Continua a coltivare questi momenti felici."
	keeperNeedCare = "Il tuo giardino ha bisogno di cure. Considera attività rilassanti come meditazione o passeggiate per aiutare le tue piante a riprendersi."
	keeperBalanced = "Il tuo giardino è in equilibrio. Ogni check-in è un seme che pianti. Continua a monitorare i tuoi stati d'animo per vedere come cresce."
)

// KeeperMessage is the garden keeper's one-line reading of the newest five
// check-ins.
func KeeperMessage(checkins []model.CheckIn) string {
	recent := checkins
	if len(recent) > keeperWindow {
		recent = recent[:keeperWindow]
	}
	if len(recent) == 0 {
		return keeperWelcome
	}
	switch avg := MeanSentiment(recent); {
	case avg > keeperThreshold:
		return keeperBlooming
	case avg < -keeperThreshold:
		return keeperNeedCare
	default:
		return keeperBalanced
	}
}

// KeeperInsight wraps KeeperMessage as a storable insight sourced on every
// check-in it was given.
func KeeperInsight(userID int64, checkins []model.CheckIn) model.Insight {
	return model.Insight{
		ID:               uuid.NewString(),
		UserID:           userID,
		Text:             KeeperMessage(checkins),
		InsightType:      model.InsightGardenKeeper,
		SourceCheckInIDs: ids(checkins),
	}
}
