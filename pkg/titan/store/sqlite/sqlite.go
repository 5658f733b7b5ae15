// Package sqlite implements the clinical store on SQLite.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/veetae/titan-lite/pkg/titan/internalerr"
	"github.com/veetae/titan-lite/pkg/titan/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// clinical schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// clinicalTables lists every table Counts reports on, in schema order.
var clinicalTables = []string{"users", "encounters", "notes", "labs"}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	handle TEXT UNIQUE NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS encounters (
	enc_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	dos TEXT NOT NULL,
	created_at TEXT NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS notes (
	note_id TEXT PRIMARY KEY,
	enc_id TEXT NOT NULL,
	note_type TEXT NOT NULL DEFAULT 'soap',
	content_md TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'draft',
	validator TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	FOREIGN KEY(enc_id) REFERENCES encounters(enc_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS labs (
	lab_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	test_name TEXT NOT NULL,
	value TEXT NOT NULL,
	unit TEXT,
	result_date TEXT NOT NULL,
	recorded_at TEXT NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at);
CREATE INDEX IF NOT EXISTS idx_labs_user ON labs(user_id, result_date);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) newID() string {
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}

func (s *sqliteStore) EnsureUser(ctx context.Context, handle string) (store.User, error) {
	if handle == "" {
		return store.User{}, internalerr.ErrInvalidPayload
	}

	var u store.User
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, handle, created_at FROM users WHERE handle = ?`, handle).
		Scan(&u.ID, &u.Handle, &created)
	if err == nil {
		u.CreatedAt, _ = time.Parse(time.RFC3339, created)
		return u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return store.User{}, err
	}

	u = store.User{ID: s.newID(), Handle: handle, CreatedAt: time.Now().UTC()}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, handle, created_at) VALUES (?, ?, ?)`,
		u.ID, u.Handle, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return store.User{}, err
	}
	return u, nil
}

func (s *sqliteStore) AddNote(ctx context.Context, handle string, dos time.Time, noteType, contentMD string) (store.Note, error) {
	user, err := s.EnsureUser(ctx, handle)
	if err != nil {
		return store.Note{}, err
	}
	if noteType == "" {
		noteType = "soap"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Note{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	encID := s.newID()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO encounters (enc_id, user_id, dos, created_at) VALUES (?, ?, ?, ?)`,
		encID, user.ID, dos.Format("2006-01-02"), now.Format(time.RFC3339))
	if err != nil {
		return store.Note{}, err
	}

	note := store.Note{
		ID:          s.newID(),
		EncounterID: encID,
		NoteType:    noteType,
		ContentMD:   contentMD,
		Status:      "draft",
		CreatedAt:   now,
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO notes (note_id, enc_id, note_type, content_md, status, validator, created_at)
		 VALUES (?, ?, ?, ?, ?, '', ?)`,
		note.ID, note.EncounterID, note.NoteType, note.ContentMD, note.Status, note.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return store.Note{}, err
	}

	if err := tx.Commit(); err != nil {
		return store.Note{}, err
	}
	return note, nil
}

func (s *sqliteStore) LatestNoteByHandle(ctx context.Context, handle string) (store.ChartNote, bool, error) {
	var (
		cn      store.ChartNote
		dos     string
		created string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT n.note_id, n.enc_id, n.note_type, n.content_md, n.status, n.validator, n.created_at,
		       e.dos, u.handle
		FROM notes n
		JOIN encounters e ON e.enc_id = n.enc_id
		JOIN users u ON u.user_id = e.user_id
		WHERE u.handle = ?
		ORDER BY n.created_at DESC, n.note_id DESC
		LIMIT 1`, handle).
		Scan(&cn.ID, &cn.EncounterID, &cn.NoteType, &cn.ContentMD, &cn.Status, &cn.Validator, &created, &dos, &cn.Handle)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ChartNote{}, false, nil
	}
	if err != nil {
		return store.ChartNote{}, false, err
	}
	cn.CreatedAt, _ = time.Parse(time.RFC3339, created)
	cn.DOS, _ = time.Parse("2006-01-02", dos)
	return cn, true, nil
}

func (s *sqliteStore) UpdateNote(ctx context.Context, noteID, contentMD, validator string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET content_md = ?, validator = ? WHERE note_id = ?`,
		contentMD, validator, noteID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("note %s: %w", noteID, internalerr.ErrNotFound)
	}
	return nil
}

func (s *sqliteStore) AddLab(ctx context.Context, handle string, lab store.Lab) (store.Lab, error) {
	user, err := s.EnsureUser(ctx, handle)
	if err != nil {
		return store.Lab{}, err
	}

	lab.ID = s.newID()
	lab.UserID = user.ID
	lab.RecordedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO labs (lab_id, user_id, test_name, value, unit, result_date, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lab.ID, lab.UserID, lab.TestName, lab.Value, lab.Unit,
		lab.ResultDate.Format("2006-01-02"), lab.RecordedAt.Format(time.RFC3339))
	if err != nil {
		return store.Lab{}, err
	}
	return lab, nil
}

func (s *sqliteStore) LatestLabs(ctx context.Context, handle string, limit int) ([]store.Lab, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.lab_id, l.user_id, l.test_name, l.value, l.unit, l.result_date, l.recorded_at
		FROM labs l
		JOIN users u ON u.user_id = l.user_id
		WHERE u.handle = ?
		ORDER BY l.result_date DESC, l.recorded_at DESC
		LIMIT ?`, handle, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labs []store.Lab
	for rows.Next() {
		var (
			lab      store.Lab
			unit     sql.NullString
			resDate  string
			recorded string
		)
		if err := rows.Scan(&lab.ID, &lab.UserID, &lab.TestName, &lab.Value, &unit, &resDate, &recorded); err != nil {
			return nil, err
		}
		lab.Unit = unit.String
		lab.ResultDate, _ = time.Parse("2006-01-02", resDate)
		lab.RecordedAt, _ = time.Parse(time.RFC3339, recorded)
		labs = append(labs, lab)
	}
	return labs, rows.Err()
}

func (s *sqliteStore) Counts(ctx context.Context) ([]store.TableCount, error) {
	counts := make([]store.TableCount, 0, len(clinicalTables))
	for _, table := range clinicalTables {
		var n int64
		if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
			return nil, err
		}
		counts = append(counts, store.TableCount{Table: table, Rows: n})
	}
	return counts, nil
}
