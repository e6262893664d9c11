package model

// UserCount is a user's clip counter state within one guild. TotalCount only
// ever grows; DayCount resets whenever DayDate advances to a new calendar day.
// LastTS is the unix timestamp of the last credited clip, zero before the
// first credit, and is not touched when a submission is rejected.
type UserCount struct {
	GuildID    string
	UserID     string
	TotalCount int
	DayDate    string // YYYY-MM-DD
	DayCount   int
	LastTS     int64
}

// ClipRecord is one credited clip URL. The (GuildID, UserID, URLHash) key is
// unique: this table is the dedup ledger, not a log of every message seen.
type ClipRecord struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	URLHash   string
	URL       string
	TS        int64
}

// Milestone grants RoleName once a user's total clip count reaches Threshold.
// Milestone roles stack; reaching a higher threshold never removes lower ones.
type Milestone struct {
	Threshold int    `json:"threshold"`
	RoleName  string `json:"role"`
}
