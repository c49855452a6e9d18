package models

import "time"

// MaxActivityEntries caps per-user history. Appends beyond the cap silently
// drop the oldest entries.
const MaxActivityEntries = 100

// Activity type tags written by the session and account services.
const (
	ActivityRegistration = "registration"
	ActivityLogin        = "login"
	ActivityLogout       = "logout"
	ActivityPrediction   = "prediction_generated"
)

// ActivityEntry is one timestamped record of a user action.
type ActivityEntry struct {
	Timestamp    time.Time      `json:"timestamp"`
	ActivityType string         `json:"activity_type"`
	Details      map[string]any `json:"details"`
}

// NewActivityEntry builds an entry stamped with the current time.
// A nil details map is normalized to an empty one so the serialized form is
// always an object.
func NewActivityEntry(activityType string, details map[string]any) ActivityEntry {
	if details == nil {
		details = map[string]any{}
	}
	return ActivityEntry{
		Timestamp:    time.Now(),
		ActivityType: activityType,
		Details:      details,
	}
}
