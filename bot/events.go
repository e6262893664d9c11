package bot

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/kickclipz/Masterclipper/clip"
)

// handler feeds tracked-channel messages into the submission pipeline.
type handler struct {
	pipeline *clip.Pipeline
	channels map[string]struct{} // lower-cased tracked channel names
}

func newHandler(pipeline *clip.Pipeline, channels []string) *handler {
	tracked := make(map[string]struct{}, len(channels))
	for _, name := range channels {
		name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
		if name != "" {
			tracked[name] = struct{}{}
		}
	}
	return &handler{pipeline: pipeline, channels: tracked}
}

func registerEventHandlers(s *discordgo.Session, h *handler) {
	s.AddHandler(h.messageCreate)
	s.AddHandler(h.messageUpdate)

	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent | discordgo.IntentsGuildMembers
}

func (h *handler) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	h.handleMessage(s, m.Message)
}

// messageUpdate reprocesses edits as independent submissions: a repeated URL
// is dropped by the dedup ledger, a newly added accepted URL earns a credit.
func (h *handler) messageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	h.handleMessage(s, m.Message)
}

func (h *handler) handleMessage(s *discordgo.Session, m *discordgo.Message) {
	// Partial edit payloads (embed unfurls) arrive without an author.
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	if !h.tracked(s, m.ChannelID) {
		return
	}

	out := h.pipeline.Process(clip.Event{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		UserID:    m.Author.ID,
		Content:   m.Content,
		Time:      time.Now(),
	})

	evt := log.With().
		Str("guild", m.GuildID).
		Str("user", m.Author.ID).
		Str("url", out.URL).
		Logger()

	switch out.Status {
	case clip.StatusNoURL:
		// Not a submission, nothing to do.
	case clip.StatusDuplicate:
		evt.Info().Msg("duplicate clip URL ignored")
	case clip.StatusCooldown:
		evt.Info().Dur("wait", out.Wait).Msg("cooldown active")
		react(s, m, "⏳")
	case clip.StatusDailyCap:
		evt.Info().Msg("daily limit reached")
		react(s, m, "🚫")
	case clip.StatusFailed:
		evt.Error().Err(out.Err).Msg("failed to process submission")
	case clip.StatusCounted:
		evt.Info().Int("total", out.Total).Int("day", out.DayCount).Msg("counted clip")
		react(s, m, "✅")
		syncMilestoneRoles(s, m.GuildID, m.Author.ID, out.EarnedRoles, out.Total)
	}
}

// tracked resolves the channel's name and checks it against the configured set.
func (h *handler) tracked(s *discordgo.Session, channelID string) bool {
	ch, err := s.State.Channel(channelID)
	if err != nil {
		ch, err = s.Channel(channelID)
		if err != nil {
			return false
		}
	}
	_, ok := h.channels[strings.ToLower(ch.Name)]
	return ok
}

// react is best-effort acknowledgement; a failed reaction never affects
// counting.
func react(s *discordgo.Session, m *discordgo.Message, emoji string) {
	if err := s.MessageReactionAdd(m.ChannelID, m.ID, emoji); err != nil {
		log.Debug().Err(err).Str("message", m.ID).Msg("failed to add reaction")
	}
}
