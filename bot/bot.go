package bot

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kickclipz/Masterclipper/clip"
	"github.com/kickclipz/Masterclipper/config"
	"github.com/kickclipz/Masterclipper/db"
)

// Start loads the configuration, opens the database, wires the submission
// pipeline into a Discord session and runs until SIGINT/SIGTERM.
func Start() {
	err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if config.Cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if config.Cfg.Token == "" {
		log.Fatal().Msg("token is empty, set it in config.yaml or the TOKEN environment variable")
	}

	store, err := db.Open(config.Cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	pipeline := clip.NewPipeline(store, clip.NewSettings(config.Cfg, config.Milestones))
	h := newHandler(pipeline, config.Cfg.Channels)

	dg, err := discordgo.New("Bot " + config.Cfg.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Discord session")
	}

	registerEventHandlers(dg, h)

	err = dg.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("error opening connection")
	}

	log.Info().
		Strs("channels", config.Cfg.Channels).
		Int("daily_limit", config.Cfg.DailyLimit).
		Int("cooldown_seconds", config.Cfg.CooldownSeconds).
		Strs("accepted_domains", config.Cfg.AcceptedDomains).
		Msg("bot is now running, press CTRL-C to exit")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	dg.Close()
	store.Close()
}
