package model

import "time"

// User represents an account in the system.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Garden is the per-user aggregate. Health is always kept in [0,1].
type Garden struct {
	ID        string    `json:"gardenId"`
	UserID    int64     `json:"userId"`
	Health    float64   `json:"health"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultGardenHealth is the health a garden starts with at registration.
const DefaultGardenHealth = 0.5

// CheckIn is a single emotional journal entry. It is never mutated after creation.
type CheckIn struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	Text           *string   `json:"text,omitempty"`
	STTText        *string   `json:"sttText,omitempty"`
	AudioObjectKey *string   `json:"audioObjectKey,omitempty"`
	EmotionLabel   string    `json:"emotionLabel"`
	SentimentScore float64   `json:"sentimentScore"`
	Intensity      float64   `json:"intensity"`
	Tags           []string  `json:"tags"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CheckInStatusComplete marks a check-in whose analysis finished synchronously.
const CheckInStatusComplete = "complete"

// AnalysisText returns the text the analyzer should read: the typed text when present,
// otherwise the transcription.
func (c *CheckIn) AnalysisText() string {
	if c.Text != nil && *c.Text != "" {
		return *c.Text
	}
	if c.STTText != nil {
		return *c.STTText
	}
	return ""
}

// EmotionAnalysis is the ephemeral result of analysing a check-in text.
type EmotionAnalysis struct {
	EmotionLabel   string  `json:"emotionLabel"`
	SentimentScore float64 `json:"sentimentScore"`
	Intensity      float64 `json:"intensity"`
}

// Position is a point in garden space. Plants always sit on y=0.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PlantParams are the visual parameters of a plant.
type PlantParams struct {
	Color      string  `json:"color"`
	Size       float64 `json:"size"`
	Shape      string  `json:"shape"`
	GrowthRate float64 `json:"growthRate"`
}

// PlantGenerationParams is what the plant generator derives from one analysis.
type PlantGenerationParams struct {
	Archetype string      `json:"archetype"`
	Params    PlantParams `json:"params"`
	Position  Position    `json:"position"`
}

// PlantInstance is one plant in a user's garden.
type PlantInstance struct {
	ID             string      `json:"id"`
	UserID         int64       `json:"userId"`
	CheckInID      *int64      `json:"checkinId"`
	Archetype      string      `json:"archetype"`
	Params         PlantParams `json:"params"`
	Position       Position    `json:"position"`
	StyleSkin      string      `json:"styleSkin,omitempty"`
	Health         float64     `json:"health"`
	GrowthProgress float64     `json:"growthProgress"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// Initial state of a freshly generated plant.
const (
	DefaultPlantHealth = 0.5
	DefaultStyleSkin   = "default"
)

// Insight is a generated statement about a user's recent check-ins.
type Insight struct {
	ID               string    `json:"id"`
	UserID           int64     `json:"userId"`
	Text             string    `json:"text"`
	InsightType      string    `json:"insightType"`
	SourceCheckInIDs []int64   `json:"sourceCheckins"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Insight types.
const (
	InsightTrendPositive = "trend_positive"
	InsightTrendNegative = "trend_negative"
	InsightPattern       = "pattern_recognition"
	InsightEncouragement = "encouragement"
	InsightGardenKeeper  = "garden_keeper"
)

// Settings holds per-user privacy and processing preferences.
type Settings struct {
	UserID             int64  `json:"userId"`
	ProcessingMode     string `json:"processingMode"`
	AudioRetentionDays int    `json:"audioRetentionDays"`
	ShareAnonymized    bool   `json:"shareAnonymized"`
}

// DefaultSettings returns the settings a new account starts with.
func DefaultSettings(userID int64) *Settings {
	return &Settings{UserID: userID, ProcessingMode: "cloud", AudioRetentionDays: 30}
}

// SettingsPatch carries a partial settings update; nil fields are left untouched.
type SettingsPatch struct {
	ProcessingMode     *string `json:"processingMode,omitempty"`
	AudioRetentionDays *int    `json:"audioRetentionDays,omitempty"`
	ShareAnonymized    *bool   `json:"shareAnonymized,omitempty"`
}

// Job is a queued background operation over a user's data.
type Job struct {
	ID            string     `json:"jobId"`
	UserID        int64      `json:"userId"`
	Kind          string     `json:"kind"`
	Format        string     `json:"format,omitempty"`
	Status        string     `json:"status"`
	Attempts      int        `json:"attempts"`
	ResultPath    string     `json:"resultPath,omitempty"`
	Error         string     `json:"error,omitempty"`
	NextAttemptAt time.Time  `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// Job kinds.
const (
	JobExport         = "export"
	JobDelete         = "delete"
	JobAudioRetention = "audio_retention"
)

// Job statuses.
const (
	JobPending = "pending"
	JobRunning = "running"
	JobDone    = "done"
	JobFailed  = "failed"
)

// CheckInRecord is everything one check-in writes, persisted atomically.
type CheckInRecord struct {
	CheckIn      *CheckIn
	Plant        *PlantInstance
	GardenHealth float64
}

// ListCheckInsRequest captures filters used when listing check-ins.
type ListCheckInsRequest struct {
	UserID int64
	Limit  int
	Since  *time.Time
}

// CheckInValues copies a list of check-in pointers into values, skipping nils.
func CheckInValues(in []*CheckIn) []CheckIn {
	out := make([]CheckIn, 0, len(in))
	for _, c := range in {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}
