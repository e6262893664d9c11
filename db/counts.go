package db

import (
	"database/sql"
	"errors"

	"github.com/kickclipz/Masterclipper/model"
)

// GetUserCount loads a user's counter record, or nil when the user has never
// been counted in this guild.
func (s *Store) GetUserCount(guildID, userID string) (*model.UserCount, error) {
	uc := model.UserCount{GuildID: guildID, UserID: userID}
	err := s.db.QueryRow(
		`SELECT total_count, day_date, day_count, last_ts FROM user_counts WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	).Scan(&uc.TotalCount, &uc.DayDate, &uc.DayCount, &uc.LastTS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &uc, nil
}

// SaveDayDate persists a rolled-over day date for a rejected submission,
// creating the counter row if this was the user's first event.
func (s *Store) SaveDayDate(guildID, userID, dayDate string) error {
	_, err := s.db.Exec(
		`INSERT INTO user_counts (guild_id, user_id, day_date) VALUES (?, ?, ?)
		 ON CONFLICT(guild_id, user_id) DO UPDATE SET day_date = excluded.day_date`,
		guildID, userID, dayDate,
	)
	return err
}

// CreditClip records one counted clip in a single transaction: the ledger
// insert and the counter update commit together or not at all. A duplicate
// (guild, user, url_hash) key means another event credited the same URL
// first; the transaction is rolled back and credited=false is returned.
func (s *Store) CreditClip(rec model.ClipRecord, uc model.UserCount) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback() // Rollback on error

	res, err := tx.Exec(
		`INSERT OR IGNORE INTO messages (guild_id, channel_id, message_id, user_id, url_hash, url, ts, counted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
		rec.GuildID, rec.ChannelID, rec.MessageID, rec.UserID, rec.URLHash, rec.URL, rec.TS,
	)
	if err != nil {
		return false, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if inserted == 0 {
		return false, nil
	}

	_, err = tx.Exec(
		`INSERT INTO user_counts (guild_id, user_id, total_count, day_date, day_count, last_ts)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(guild_id, user_id) DO UPDATE SET
		   total_count = excluded.total_count,
		   day_date    = excluded.day_date,
		   day_count   = excluded.day_count,
		   last_ts     = excluded.last_ts`,
		uc.GuildID, uc.UserID, uc.TotalCount, uc.DayDate, uc.DayCount, uc.LastTS,
	)
	if err != nil {
		return false, err
	}

	return true, tx.Commit()
}
