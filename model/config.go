package model

// BotConfig mirrors config.yaml, with environment variables overriding
// individual keys.
type BotConfig struct {
	Token           string   `mapstructure:"token"`
	Channels        []string `mapstructure:"channels"`
	DailyLimit      int      `mapstructure:"daily_limit"`
	CooldownSeconds int      `mapstructure:"cooldown_seconds"`
	AcceptedDomains []string `mapstructure:"accepted_domains"`
	Milestones      string   `mapstructure:"milestones"` // JSON list of {threshold, role}
	DBPath          string   `mapstructure:"db_path"`
	Debug           bool     `mapstructure:"debug"`
}
