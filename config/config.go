package config

import (
	"encoding/json"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/kickclipz/Masterclipper/model"
)

// DefaultMilestones is used whenever the configured milestone JSON is absent
// or malformed.
var DefaultMilestones = []model.Milestone{
	{Threshold: 5, RoleName: "Highlight Hunter"},
	{Threshold: 25, RoleName: "Clip Master"},
	{Threshold: 50, RoleName: "Legendary Editor"},
}

var Cfg model.BotConfig

// Milestones is the parsed, ascending milestone list. The raw JSON is parsed
// exactly once in LoadConfig; nothing re-reads it per event.
var Milestones []model.Milestone

func LoadConfig() (err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Defaults double as key registrations so AutomaticEnv can override
	// every key even without a config file.
	viper.SetDefault("token", "")
	viper.SetDefault("channels", []string{"clips"})
	viper.SetDefault("daily_limit", 3)
	viper.SetDefault("cooldown_seconds", 30)
	viper.SetDefault("accepted_domains", []string{"kick.com", "twitch.tv", "youtube.com", "youtu.be"})
	viper.SetDefault("milestones", "")
	viper.SetDefault("db_path", "./data/clipbot.db")
	viper.SetDefault("debug", false)

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// No config.yaml is fine, everything can come from the environment.
		err = nil
	}

	if err = viper.Unmarshal(&Cfg); err != nil {
		return
	}

	Milestones = ParseMilestones(Cfg.Milestones)
	return
}

// ParseMilestones turns the configured JSON into a validated, ascending
// milestone list. Anything malformed falls back to DefaultMilestones; that
// choice is made here, once, and logged once.
func ParseMilestones(raw string) []model.Milestone {
	if raw == "" {
		return sortedCopy(DefaultMilestones)
	}

	var ms []model.Milestone
	if err := json.Unmarshal([]byte(raw), &ms); err != nil {
		log.Warn().Err(err).Msg("invalid milestone JSON, using default milestones")
		return sortedCopy(DefaultMilestones)
	}
	if len(ms) == 0 {
		log.Warn().Msg("empty milestone list, using default milestones")
		return sortedCopy(DefaultMilestones)
	}
	for _, m := range ms {
		if m.Threshold < 1 || m.RoleName == "" {
			log.Warn().Int("threshold", m.Threshold).Str("role", m.RoleName).
				Msg("invalid milestone entry, using default milestones")
			return sortedCopy(DefaultMilestones)
		}
	}
	return sortedCopy(ms)
}

func sortedCopy(ms []model.Milestone) []model.Milestone {
	out := make([]model.Milestone, len(ms))
	copy(out, ms)
	sort.Slice(out, func(i, j int) bool { return out[i].Threshold < out[j].Threshold })
	return out
}
