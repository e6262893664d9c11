package db

// createTables creates the necessary tables in the database if they don't exist.
func (s *Store) createTables() error {
	createUserCountsTableSQL := `
	CREATE TABLE IF NOT EXISTS user_counts (
		guild_id TEXT NOT NULL,
		user_id  TEXT NOT NULL,
		total_count INTEGER NOT NULL DEFAULT 0,
		day_date TEXT,             -- YYYY-MM-DD
		day_count INTEGER NOT NULL DEFAULT 0,
		last_ts  INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (guild_id, user_id)
	);`

	if _, err := s.db.Exec(createUserCountsTableSQL); err != nil {
		return err
	}

	createMessagesTableSQL := `
	CREATE TABLE IF NOT EXISTS messages (
		guild_id   TEXT NOT NULL,
		channel_id TEXT NOT NULL,
		message_id TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		url_hash   TEXT NOT NULL,
		url        TEXT NOT NULL,
		ts         INTEGER NOT NULL,
		counted    INTEGER NOT NULL DEFAULT 1,
		UNIQUE (guild_id, user_id, url_hash)
	);`

	_, err := s.db.Exec(createMessagesTableSQL)
	return err
}
