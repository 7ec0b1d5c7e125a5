package notesvc

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"brain/internal/types"
)

const createdAtLayout = "2006-01-02T15:04:05.000000"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	content TEXT NOT NULL,
	category TEXT,
	is_task INTEGER NOT NULL DEFAULT 0,
	file_path TEXT,
	code_snippet TEXT,
	web_context TEXT,
	created_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_notes_user_id ON notes(user_id);
`

// Store is the SQLite-backed note table the local service reads from.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func OpenStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create notes schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// List returns every note owned by userID. Callers must not rely on order.
func (s *Store) List(ctx context.Context, userID string) ([]types.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, category, is_task, file_path, code_snippet, web_context, created_at
		FROM notes WHERE user_id = ?`, userID)
	if err != nil {
		return nil, unavailableError("list notes", err)
	}
	defer rows.Close()

	out := []types.Note{}
	for rows.Next() {
		var (
			note                                        types.Note
			category, filePath, snippet, web, createdAt sql.NullString
			isTask                                      int64
		)
		if err := rows.Scan(&note.ID, &note.Content, &category, &isTask, &filePath, &snippet, &web, &createdAt); err != nil {
			return nil, unavailableError("scan note", err)
		}
		note.Category = nullableString(category)
		note.IsTask = types.TaskFlag(isTask != 0)
		note.FilePath = nullableString(filePath)
		note.CodeSnippet = nullableString(snippet)
		note.WebContext = nullableString(web)
		note.CreatedAt = createdAt.String
		out = append(out, note)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailableError("list notes", err)
	}
	return out, nil
}

// Seed inserts notes for userID in one transaction. Notes with a positive
// id keep it; others get the next id. Missing timestamps default to now.
func (s *Store) Seed(ctx context.Context, userID string, notes []types.Note) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, invalidError("user id is required", nil)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, unavailableError("begin seed", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, note := range notes {
		if strings.TrimSpace(note.Content) == "" {
			return 0, invalidError(fmt.Sprintf("note %d has no content", note.ID), nil)
		}
		createdAt := note.CreatedAt
		if createdAt == "" {
			createdAt = s.now().UTC().Format(createdAtLayout)
		}
		var id any
		if note.ID > 0 {
			id = note.ID
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO notes (id, user_id, content, category, is_task, file_path, code_snippet, web_context, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, userID, note.Content, note.Category, boolToInt(note.Task()),
			note.FilePath, note.CodeSnippet, note.WebContext, createdAt,
		)
		if err != nil {
			return 0, unavailableError("insert note", err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return 0, unavailableError("commit seed", err)
	}
	return inserted, nil
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
