// Package store is the clinical record collaborator: users, encounters,
// notes and labs. It backs the chart and loader tools and is never imported
// by the core text pipeline.
package store

import (
	"context"
	"time"
)

// Store persists and queries clinical records.
type Store interface {
	Close() error

	// EnsureUser returns the user with the given handle, creating it when
	// absent.
	EnsureUser(ctx context.Context, handle string) (User, error)

	// AddNote files a note for the handle under a new encounter dated dos.
	AddNote(ctx context.Context, handle string, dos time.Time, noteType, contentMD string) (Note, error)

	// LatestNoteByHandle returns the newest note for the handle, joined with
	// its encounter date. The boolean reports whether any note exists.
	LatestNoteByHandle(ctx context.Context, handle string) (ChartNote, bool, error)

	// UpdateNote rewrites a note's content and validator tag in place.
	UpdateNote(ctx context.Context, noteID, contentMD, validator string) error

	// AddLab records one lab result for the handle.
	AddLab(ctx context.Context, handle string, lab Lab) (Lab, error)

	// LatestLabs returns the handle's most recent lab results, newest first.
	LatestLabs(ctx context.Context, handle string, limit int) ([]Lab, error)

	// Counts reports row counts per clinical table, in schema order.
	Counts(ctx context.Context) ([]TableCount, error)
}

// User is a record owner identified by a stable handle.
type User struct {
	ID        string
	Handle    string
	CreatedAt time.Time
}

// Encounter groups notes filed for one date of service.
type Encounter struct {
	ID     string
	UserID string
	DOS    time.Time
}

// Note is one clinical note filed under an encounter.
type Note struct {
	ID          string
	EncounterID string
	NoteType    string
	ContentMD   string
	Status      string
	Validator   string
	CreatedAt   time.Time
}

// ChartNote is a note joined with the context the chart emitter needs.
type ChartNote struct {
	Note
	DOS    time.Time
	Handle string
}

// Lab is one lab result row.
type Lab struct {
	ID         string
	UserID     string
	TestName   string
	Value      string
	Unit       string
	ResultDate time.Time
	RecordedAt time.Time
}

// TableCount pairs a table name with its row count.
type TableCount struct {
	Table string
	Rows  int64
}
