package storage

import (
	"database/sql"
	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Comparison is one logged comparison request.
type Comparison struct {
	ID      string
	ChatID  int64
	Symbol1 string
	Symbol2 string
	Years   int
	TS      int64
}

type Store struct{ db DB }

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS comparisons(
		id TEXT PRIMARY KEY, chat_id INTEGER, symbol1 TEXT, symbol2 TEXT, years INTEGER, ts INTEGER
	)`)
	return err
}

func NewStore(db DB) *Store { return &Store{db: db} }

func (s *Store) SaveComparison(c Comparison) error {
	_, err := s.db.Exec(`INSERT INTO comparisons(id,chat_id,symbol1,symbol2,years,ts) VALUES(?,?,?,?,?,?)`,
		c.ID, c.ChatID, c.Symbol1, c.Symbol2, c.Years, c.TS)
	return err
}

// RecentComparisons returns the newest logged comparisons for a chat.
func (s *Store) RecentComparisons(chatID int64, limit int) ([]Comparison, error) {
	rows, err := s.db.Query(`SELECT id,chat_id,symbol1,symbol2,years,ts FROM comparisons
		WHERE chat_id=? ORDER BY ts DESC LIMIT ?`, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Comparison
	for rows.Next() {
		var c Comparison
		if err := rows.Scan(&c.ID, &c.ChatID, &c.Symbol1, &c.Symbol2, &c.Years, &c.TS); err == nil {
			out = append(out, c)
		}
	}
	return out, nil
}
