package garden

// Archetype is the visual and growth rule-set a plant inherits from its emotion.
type Archetype struct {
	Color      string  `json:"color"`
	Shape      string  `json:"shape"`
	GrowthRate float64 `json:"growthRate"`
}

// ArchetypeNeutral is the key every unknown label resolves to.
const ArchetypeNeutral = "neutral"

// The table is keyed by emotion names, not by the labels Analyze emits, so
// plants generated from analysed check-ins end up with the neutral entry.
var archetypes = map[string]Archetype{
	"joy":        {Color: "#FFD700", Shape: "flower", GrowthRate: 1.2},
	"sadness":    {Color: "#4169E1", Shape: "drooping", GrowthRate: 0.8},
	"anger":      {Color: "#DC143C", Shape: "spiky", GrowthRate: 1.0},
	"fear":       {Color: "#800080", Shape: "curled", GrowthRate: 0.7},
	"surprise":   {Color: "#FFA500", Shape: "star", GrowthRate: 1.1},
	"disgust":    {Color: "#228B22", Shape: "thorny", GrowthRate: 0.9},
	"anxiety":    {Color: "#FF6347", Shape: "wavy", GrowthRate: 0.8},
	"excitement": {Color: "#FF1493", Shape: "burst", GrowthRate: 1.3},
	"gratitude":  {Color: "#98FB98", Shape: "blooming", GrowthRate: 1.1},
	"love":       {Color: "#FF69B4", Shape: "heart", GrowthRate: 1.2},
	"confusion":  {Color: "#D3D3D3", Shape: "twisted", GrowthRate: 0.9},
	"calm":       {Color: "#87CEEB", Shape: "straight", GrowthRate: 1.0},
	"neutral":    {Color: "#8B4513", Shape: "basic", GrowthRate: 1.0},
}

// LookupArchetype returns the archetype for label, or the neutral one when the
// label is not in the table.
func LookupArchetype(label string) Archetype {
	if a, ok := archetypes[label]; ok {
		return a
	}
	return archetypes[ArchetypeNeutral]
}
