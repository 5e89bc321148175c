package entries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/caresupport/internal/client/diary"
	"github.com/dmitrijs2005/caresupport/internal/dbx"
)

// SQLiteRepository implements diary.Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

var _ diary.Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) AddCheckIn(ctx context.Context, userID string, c diary.CheckIn) error {
	query := `INSERT INTO check_ins (id, user_id, created_at, mood, energy, note) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, userID, c.CreatedAt.UnixNano(), string(c.Mood), c.Energy, c.Note)
	if err != nil {
		return fmt.Errorf("failed to insert check-in: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) AddEntry(ctx context.Context, userID string, e diary.Entry) error {
	query := `INSERT INTO diary_entries (id, user_id, created_at, text) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.ID, userID, e.CreatedAt.UnixNano(), e.Text)
	if err != nil {
		return fmt.Errorf("failed to insert diary entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CheckIns(ctx context.Context, userID string) ([]diary.CheckIn, error) {
	query := `SELECT id, created_at, mood, energy, note FROM check_ins WHERE user_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select check-ins: %w", err)
	}
	defer rows.Close()

	var result []diary.CheckIn
	for rows.Next() {
		var (
			c       diary.CheckIn
			created int64
			mood    string
		)
		if err := rows.Scan(&c.ID, &created, &mood, &c.Energy, &c.Note); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		c.CreatedAt = time.Unix(0, created).UTC()
		c.Mood = diary.Mood(mood)
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate check-ins: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Entries(ctx context.Context, userID string) ([]diary.Entry, error) {
	query := `SELECT id, created_at, text FROM diary_entries WHERE user_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select diary entries: %w", err)
	}
	defer rows.Close()

	var result []diary.Entry
	for rows.Next() {
		var (
			e       diary.Entry
			created int64
		)
		if err := rows.Scan(&e.ID, &created, &e.Text); err != nil {
			return nil, fmt.Errorf("failed to scan diary entry: %w", err)
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate diary entries: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) SetTaskDone(ctx context.Context, userID, taskID string, done bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO task_states (user_id, task_id, done) VALUES (?, ?, ?)
		ON CONFLICT(user_id, task_id) DO UPDATE SET done = excluded.done
	`, userID, taskID, done)
	if err != nil {
		return fmt.Errorf("failed to save task state[%s]: %w", taskID, err)
	}
	return nil
}

func (r *SQLiteRepository) TaskStates(ctx context.Context, userID string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT task_id, done FROM task_states WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select task states: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var (
			id   string
			done bool
		)
		if err := rows.Scan(&id, &done); err != nil {
			return nil, fmt.Errorf("failed to scan task state: %w", err)
		}
		result[id] = done
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task states: %w", err)
	}
	return result, nil
}

// DeleteUser removes all of the user's rows. Given a *sql.DB it does so in
// one transaction.
func (r *SQLiteRepository) DeleteUser(ctx context.Context, userID string) error {
	if db, ok := r.db.(*sql.DB); ok {
		return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return deleteUser(ctx, tx, userID)
		})
	}
	return deleteUser(ctx, r.db, userID)
}

func deleteUser(ctx context.Context, db dbx.DBTX, userID string) error {
	for _, table := range []string{"check_ins", "diary_entries", "task_states"} {
		if _, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}
	return nil
}
