package state

import (
	"database/sql"
	"errors"
)

// Preferences are the user settings remembered between runs.
// The playlist itself is never stored.
type Preferences struct {
	Volume float64
	Repeat bool
}

func getPreferences(db *sql.DB) (*Preferences, error) {
	var p Preferences
	row := db.QueryRow(`SELECT volume, repeat FROM preferences WHERE id = 1`)
	err := row.Scan(&p.Volume, &p.Repeat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nothing saved yet
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func savePreferences(db *sql.DB, p Preferences) error {
	_, err := db.Exec(`
		INSERT INTO preferences (id, volume, repeat)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			repeat = excluded.repeat
	`, p.Volume, p.Repeat)
	return err
}
