package insight

import (
	"fmt"
	"time"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// Notification types.
const (
	NotifyWelcome         = "welcome"
	NotifyCheckInReminder = "checkin_reminder"
	NotifySupport         = "emotional_support"
	NotifyEncouragement   = "positive_encouragement"
)

// Notification priorities.
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

const (
	reminderAfterDays    = 2
	patternMinCheckIns   = 5
	patternMinDominant   = 3
	supportThreshold     = -0.3
	celebrationThreshold = 0.4
)

// Notification is a nudge shown to the user; it is computed on read and never stored.
type Notification struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Priority string         `json:"priority"`
	Data     map[string]any `json:"data,omitempty"`
}

// Notifications builds the nudges for check-ins ordered newest first, as seen at now.
func Notifications(recent []model.CheckIn, now time.Time) []Notification {
	if len(recent) == 0 {
		return []Notification{{
			Type:     NotifyWelcome,
			Title:    "Welcome to MindGarden! 🌱",
			Message:  "Start your emotional wellness journey by sharing how you're feeling today.",
			Priority: PriorityHigh,
			Data:     map[string]any{"action": "checkin"},
		}}
	}

	var out []Notification
	days := DaysSince(recent[0].CreatedAt, now)
	if days >= reminderAfterDays {
		msg := fmt.Sprintf("It's been %d days since your last check-in. Your garden misses you! 🌱", days)
		if days == reminderAfterDays {
			msg = "It's been a couple of days since your last check-in. How are you feeling today?"
		}
		out = append(out, Notification{
			Type:     NotifyCheckInReminder,
			Title:    "Time for a Check-In",
			Message:  msg,
			Priority: PriorityNormal,
			Data:     map[string]any{"action": "checkin", "daysSinceLast": days},
		})
	}

	if len(recent) < patternMinCheckIns {
		return out
	}
	avg := MeanSentiment(recent)
	label, n := DominantLabel(recent)
	if n < patternMinDominant {
		return out
	}
	switch {
	case avg < supportThreshold:
		out = append(out, Notification{
			Type:     NotifySupport,
			Title:    "Your Garden Needs Care",
			Message:  fmt.Sprintf("I've noticed you've been feeling %s frequently. Consider some self-care activities or talking to a trusted friend.", label),
			Priority: PriorityHigh,
			Data:     map[string]any{"emotion": label, "pattern": "negative_trend"},
		})
	case avg > celebrationThreshold:
		out = append(out, Notification{
			Type:     NotifyEncouragement,
			Title:    "Amazing Progress! 🌟",
			Message:  "You're on a wonderful positive streak! Keep nurturing these good feelings - your garden is blooming beautifully.",
			Priority: PriorityNormal,
			Data:     map[string]any{"emotion": label, "pattern": "positive_streak"},
		})
	}
	return out
}

// DaysSince counts whole 24h periods between t and now, never negative.
func DaysSince(t, now time.Time) int {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
