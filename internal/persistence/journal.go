// Package persistence stores finished missions in SQLite.
package persistence

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/everforgeworks/galaxies-mission-control/internal/mission"
)

// Journal is the mission outcome log.
type Journal struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite journal at path.
func Open(path string) (*Journal, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	j := &Journal{conn: conn}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.conn.Close()
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS mission_outcomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mission_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		employer TEXT NOT NULL,
		status TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		reward INTEGER NOT NULL DEFAULT 0,
		finished_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_outcomes_employer ON mission_outcomes(employer);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// Record appends one outcome.
func (j *Journal) Record(o mission.Outcome) error {
	_, err := j.conn.NamedExec(`INSERT INTO mission_outcomes
		(mission_id, kind, employer, status, reason, reward, finished_at)
		VALUES (:mission_id, :kind, :employer, :status, :reason, :reward, :finished_at)`, o)
	if err != nil {
		return fmt.Errorf("record %s: %w", o.MissionID, err)
	}
	return nil
}

// Recent returns the latest outcomes, newest first.
func (j *Journal) Recent(limit int) ([]mission.Outcome, error) {
	outcomes := []mission.Outcome{}
	err := j.conn.Select(&outcomes,
		`SELECT mission_id, kind, employer, status, reason, reward, finished_at
		 FROM mission_outcomes ORDER BY id DESC LIMIT ?`,
		limit,
	)
	return outcomes, err
}

// Standing sums completed rewards per employer.
func (j *Journal) Standing(employer string) (completed int, earned int, err error) {
	row := struct {
		Completed int `db:"completed"`
		Earned    int `db:"earned"`
	}{}
	err = j.conn.Get(&row,
		`SELECT COUNT(*) AS completed, COALESCE(SUM(reward), 0) AS earned
		 FROM mission_outcomes WHERE employer = ? AND status = 'completed'`,
		employer,
	)
	return row.Completed, row.Earned, err
}
