package entity

import (
	"time"
)

// Account is the aggregate root for the account domain.
// Password holds the bcrypt digest; plaintext never reaches the store.
//
// Email is the account's identity and is matched exactly (no case folding).
type Account struct {
	ID          string
	Name        string
	Email       string
	Password    string
	Membership  string
	Settings    Settings
	ChatHistory []ChatMessage
	MoodLogs    []MoodLog
	CreatedAt   time.Time
}

// Settings is the per-account preferences sub-document.
type Settings struct {
	AvatarURL          string `json:"avatar_url,omitempty"`
	Timezone           string `json:"timezone,omitempty"`
	DailyReminder      bool   `json:"daily_reminder"`
	ShareAnonymousData bool   `json:"share_anonymous_data"`
}

// Membership tiers.
const (
	MembershipFree    = "free"
	MembershipPremium = "premium"
)
