package db

import (
	"database/sql"
	"errors"
)

// AlreadyCounted reports whether this URL hash was ever credited to the user
// in this guild.
func (s *Store) AlreadyCounted(guildID, userID, urlHash string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM messages WHERE guild_id = ? AND user_id = ? AND url_hash = ?`,
		guildID, userID, urlHash,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
