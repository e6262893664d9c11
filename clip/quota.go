package clip

import (
	"time"

	"github.com/kickclipz/Masterclipper/model"
)

// QuotaDecision classifies whether a submission may be credited right now.
type QuotaDecision int

const (
	QuotaEligible QuotaDecision = iota
	QuotaCooldown
	QuotaDailyCap
)

const dayLayout = "2006-01-02"

// EvaluateQuota applies day rollover, then the cooldown, then the daily cap
// to a user's counter record. uc may be nil (first submission); a zero record
// dated today is synthesized. The returned record always carries the
// rolled-over DayDate so callers persist it even on rejection, otherwise the
// next event would re-run rollover from a stale date. The returned duration
// is the remaining cooldown, zero unless the decision is QuotaCooldown.
//
// The cooldown is anchored to the last credited submission, not the last
// message seen: rejected or duplicate posts never extend the window.
func EvaluateQuota(uc *model.UserCount, guildID, userID string, now time.Time, cooldown time.Duration, dailyLimit int) (model.UserCount, QuotaDecision, time.Duration) {
	today := now.Format(dayLayout)

	rec := model.UserCount{GuildID: guildID, UserID: userID, DayDate: today}
	if uc != nil {
		rec = *uc
	}
	if rec.DayDate != today {
		rec.DayDate = today
		rec.DayCount = 0
	}

	if rec.LastTS != 0 {
		elapsed := time.Duration(now.Unix()-rec.LastTS) * time.Second
		if elapsed < cooldown {
			return rec, QuotaCooldown, cooldown - elapsed
		}
	}

	if rec.DayCount >= dailyLimit {
		return rec, QuotaDailyCap, 0
	}

	return rec, QuotaEligible, 0
}
