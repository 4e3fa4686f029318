package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/korjavin/triviabot/models"
	_ "github.com/mattn/go-sqlite3"
)

// DB handles all database operations
type DB struct {
	conn *sql.DB
}

// New opens the sqlite database at dbPath, creating its directory and tables
func New(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err = createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			question_count INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			category INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			type TEXT NOT NULL,
			time_budget INTEGER NOT NULL,
			auto_submitted BOOLEAN NOT NULL,
			timestamp INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS user_options (
			user_id INTEGER PRIMARY KEY,
			amount INTEGER NOT NULL,
			category INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			type TEXT NOT NULL,
			encoding TEXT NOT NULL,
			time_budget INTEGER NOT NULL
		)
	`)
	return err
}

// SaveSessionResult records the outcome of a submitted session
func (db *DB) SaveSessionResult(r models.SessionResult) error {
	_, err := db.conn.Exec(`
		INSERT INTO session_results
			(user_id, question_count, correct, category, difficulty, type, time_budget, auto_submitted, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UserID, r.QuestionCount, r.Correct, r.Category, string(r.Difficulty), string(r.Type),
		r.TimeBudget, r.AutoSubmitted, r.Timestamp,
	)
	return err
}

// GetUserStats aggregates every stored session of the user
func (db *DB) GetUserStats(userID int64) (models.UserStats, error) {
	var stats models.UserStats
	err := db.conn.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(question_count), 0),
			COALESCE(SUM(correct), 0),
			COALESCE(SUM(CASE WHEN auto_submitted THEN 1 ELSE 0 END), 0)
		FROM session_results
		WHERE user_id = ?`,
		userID,
	).Scan(&stats.Sessions, &stats.QuestionsTotal, &stats.CorrectTotal, &stats.AutoSubmitted)
	if err != nil {
		return models.UserStats{}, err
	}
	if stats.Sessions == 0 {
		return stats, nil
	}

	// best ratio first, larger sessions break ties
	err = db.conn.QueryRow(`
		SELECT correct, question_count
		FROM session_results
		WHERE user_id = ? AND question_count > 0
		ORDER BY CAST(correct AS REAL) / question_count DESC, question_count DESC
		LIMIT 1`,
		userID,
	).Scan(&stats.BestScore, &stats.BestOutOf)
	if err == sql.ErrNoRows {
		return stats, nil
	}
	return stats, err
}

// GetRecentResults returns the user's latest results, newest first
func (db *DB) GetRecentResults(userID int64, limit int) ([]models.SessionResult, error) {
	rows, err := db.conn.Query(`
		SELECT question_count, correct, category, difficulty, type, time_budget, auto_submitted, timestamp
		FROM session_results
		WHERE user_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.SessionResult
	for rows.Next() {
		r := models.SessionResult{UserID: userID}
		var difficulty, qType string
		if err := rows.Scan(&r.QuestionCount, &r.Correct, &r.Category, &difficulty, &qType,
			&r.TimeBudget, &r.AutoSubmitted, &r.Timestamp); err != nil {
			return nil, err
		}
		r.Difficulty = models.Difficulty(difficulty)
		r.Type = models.AnswerType(qType)
		result = append(result, r)
	}

	return result, rows.Err()
}

// SaveUserOptions stores the options the user picked for their next session
func (db *DB) SaveUserOptions(userID int64, o models.SessionOptions) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO user_options
			(user_id, amount, category, difficulty, type, encoding, time_budget)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, o.Amount, o.Category, string(o.Difficulty), string(o.Type), string(o.Encoding), o.TimeBudget,
	)
	return err
}

// GetUserOptions returns the stored options, or the defaults for a new user
func (db *DB) GetUserOptions(userID int64) (models.SessionOptions, error) {
	var o models.SessionOptions
	var difficulty, qType, encoding string
	err := db.conn.QueryRow(`
		SELECT amount, category, difficulty, type, encoding, time_budget
		FROM user_options
		WHERE user_id = ?`,
		userID,
	).Scan(&o.Amount, &o.Category, &difficulty, &qType, &encoding, &o.TimeBudget)

	if err == sql.ErrNoRows {
		return models.DefaultOptions(), nil
	}
	if err != nil {
		return models.SessionOptions{}, err
	}

	o.Difficulty = models.Difficulty(difficulty)
	o.Type = models.AnswerType(qType)
	o.Encoding = models.Encoding(encoding)
	return o.Normalized(), nil
}
