package clip

import (
	"strings"
	"sync"
	"time"

	"github.com/kickclipz/Masterclipper/model"
)

// Event is one inbound submission: a message created or edited in a tracked
// channel. Edits are full independent re-submissions; URL dedup alone decides
// whether an edited message earns a second credit.
type Event struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	Content   string
	Time      time.Time
}

// Status is the terminal state of one event's trip through the pipeline.
type Status int

const (
	StatusNoURL Status = iota
	StatusDuplicate
	StatusCooldown
	StatusDailyCap
	StatusCounted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNoURL:
		return "no_url"
	case StatusDuplicate:
		return "duplicate"
	case StatusCooldown:
		return "cooldown"
	case StatusDailyCap:
		return "daily_cap"
	case StatusCounted:
		return "counted"
	default:
		return "failed"
	}
}

// Outcome reports what happened to an event. Total, DayCount and EarnedRoles
// are only set on StatusCounted; Wait only on StatusCooldown; Err only on
// StatusFailed.
type Outcome struct {
	Status      Status
	URL         string
	Total       int
	DayCount    int
	Wait        time.Duration
	EarnedRoles []string
	Err         error
}

// Settings is the pipeline's immutable configuration, fixed at construction.
type Settings struct {
	AcceptedDomains map[string]struct{}
	DailyLimit      int
	Cooldown        time.Duration
	Milestones      []model.Milestone
}

// NewSettings builds pipeline settings from the loaded bot config and the
// already-parsed milestone list.
func NewSettings(cfg model.BotConfig, milestones []model.Milestone) Settings {
	domains := make(map[string]struct{}, len(cfg.AcceptedDomains))
	for _, d := range cfg.AcceptedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			domains[d] = struct{}{}
		}
	}
	return Settings{
		AcceptedDomains: domains,
		DailyLimit:      cfg.DailyLimit,
		Cooldown:        time.Duration(cfg.CooldownSeconds) * time.Second,
		Milestones:      milestones,
	}
}

// Store is the persistence the pipeline needs. CreditClip must be atomic: the
// ledger insert and the counter update commit together or not at all, and a
// duplicate-key race on the ledger reports credited=false instead of failing.
type Store interface {
	AlreadyCounted(guildID, userID, urlHash string) (bool, error)
	GetUserCount(guildID, userID string) (*model.UserCount, error)
	SaveDayDate(guildID, userID, dayDate string) error
	CreditClip(rec model.ClipRecord, uc model.UserCount) (credited bool, err error)
}

// Pipeline runs every submission through extract → dedup → quota → credit →
// milestones. The quota read and the credit write for one (guild, user) are
// serialized by a keyed mutex; events for different users never share a lock.
type Pipeline struct {
	store    Store
	settings Settings

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPipeline(store Store, settings Settings) *Pipeline {
	return &Pipeline{
		store:    store,
		settings: settings,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Process runs one event to a terminal outcome. It never panics; any store
// error surfaces as StatusFailed and the event is simply dropped.
func (p *Pipeline) Process(e Event) Outcome {
	url := ExtractClipURL(e.Content, p.settings.AcceptedDomains)
	if url == "" {
		return Outcome{Status: StatusNoURL}
	}
	hash := URLKey(url)

	// Dedup runs before any quota check so re-posting an already-counted
	// link never consumes quota and never reports a cooldown.
	counted, err := p.store.AlreadyCounted(e.GuildID, e.UserID, hash)
	if err != nil {
		return Outcome{Status: StatusFailed, URL: url, Err: err}
	}
	if counted {
		return Outcome{Status: StatusDuplicate, URL: url}
	}

	unlock := p.lockUser(e.GuildID, e.UserID)
	defer unlock()

	uc, err := p.store.GetUserCount(e.GuildID, e.UserID)
	if err != nil {
		return Outcome{Status: StatusFailed, URL: url, Err: err}
	}

	rec, decision, wait := EvaluateQuota(uc, e.GuildID, e.UserID, e.Time, p.settings.Cooldown, p.settings.DailyLimit)
	if decision != QuotaEligible {
		// The rolled-over date must stick even though the event is rejected.
		if err := p.store.SaveDayDate(e.GuildID, e.UserID, rec.DayDate); err != nil {
			return Outcome{Status: StatusFailed, URL: url, Err: err}
		}
		if decision == QuotaCooldown {
			return Outcome{Status: StatusCooldown, URL: url, Wait: wait}
		}
		return Outcome{Status: StatusDailyCap, URL: url}
	}

	rec.TotalCount++
	rec.DayCount++
	rec.LastTS = e.Time.Unix()

	credited, err := p.store.CreditClip(model.ClipRecord{
		GuildID:   e.GuildID,
		ChannelID: e.ChannelID,
		MessageID: e.MessageID,
		UserID:    e.UserID,
		URLHash:   hash,
		URL:       url,
		TS:        e.Time.Unix(),
	}, rec)
	if err != nil {
		return Outcome{Status: StatusFailed, URL: url, Err: err}
	}
	if !credited {
		return Outcome{Status: StatusDuplicate, URL: url}
	}

	return Outcome{
		Status:      StatusCounted,
		URL:         url,
		Total:       rec.TotalCount,
		DayCount:    rec.DayCount,
		EarnedRoles: EarnedRoles(rec.TotalCount, p.settings.Milestones),
	}
}

// lockUser takes the mutex for one (guild, user) key, creating it on first
// use, and returns the matching unlock.
func (p *Pipeline) lockUser(guildID, userID string) func() {
	key := guildID + "\x00" + userID

	p.mu.Lock()
	m, ok := p.locks[key]
	if !ok {
		m = &sync.Mutex{}
		p.locks[key] = m
	}
	p.mu.Unlock()

	m.Lock()
	return m.Unlock
}
