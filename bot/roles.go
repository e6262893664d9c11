package bot

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/kickclipz/Masterclipper/clip"
)

// syncMilestoneRoles grants the member any earned milestone roles they are
// missing, in one batch edit. Role granting is allowed to fail independently
// of counting: the clip stays counted no matter what happens here.
func syncMilestoneRoles(s *discordgo.Session, guildID, userID string, earned []string, total int) {
	if len(earned) == 0 {
		return
	}

	roles, err := s.GuildRoles(guildID)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("failed to list guild roles")
		return
	}
	byName := make(map[string]string, len(roles))
	for _, r := range roles {
		byName[r.Name] = r.ID
	}

	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Str("user", userID).Msg("failed to fetch member")
		return
	}

	toAdd := clip.RolesToAdd(earned, byName, member.Roles)
	if len(toAdd) == 0 {
		return
	}

	newRoles := make([]string, 0, len(member.Roles)+len(toAdd))
	newRoles = append(newRoles, member.Roles...)
	newRoles = append(newRoles, toAdd...)

	_, err = s.GuildMemberEdit(guildID, userID, &discordgo.GuildMemberParams{Roles: &newRoles})
	if err != nil {
		if isForbidden(err) {
			log.Warn().Str("guild", guildID).Str("user", userID).
				Msg("missing permissions to add roles, ensure the bot role is above the milestone roles")
		} else {
			log.Error().Err(err).Str("guild", guildID).Str("user", userID).Msg("failed to assign roles")
		}
		return
	}

	log.Info().Str("guild", guildID).Str("user", userID).Int("total", total).
		Str("roles", strings.Join(toAdd, ",")).Msg("assigned milestone roles")
}

func isForbidden(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == http.StatusForbidden
	}
	return false
}
