package core

import (
	"context"

	"attendlog.com/attendlog/model"
)

// Ledger is the ordered attendance event log the machine reads and writes. Any
// keyed store supporting point lookup and in-place update is conformant; the
// machine never assumes a storage format.
//
// FindOpen must return entries in ascending id order so the machine can break
// ties by taking the last (highest id) entry. FindByID returns (nil, nil) when
// no entry carries the id. Update field keys are the event's storage column
// names (end_time, elapsed, kind, lateness, status).
type Ledger interface {
	Append(ctx context.Context, ev *model.AttendanceEvent) error
	FindOpen(ctx context.Context, employeeID int, date string, kind model.ActionKind) ([]model.AttendanceEvent, error)
	FindByID(ctx context.Context, id int64) (*model.AttendanceEvent, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	ExistsWithKind(ctx context.Context, employeeID int, date string, kinds ...model.ActionKind) (bool, error)
}

// Directory resolves an employee id to the identity snapshot denormalized onto
// ledger rows. Lookup returns (nil, nil) for an unknown id.
type Directory interface {
	Lookup(ctx context.Context, employeeID int) (*model.Employee, error)
}

// PendingStore holds open timed interruptions between their start and resume
// calls. Create mints the opaque token the caller must present later. Peek
// returns the action without removing it, so a resume that fails downstream
// leaves the token valid for a retry; Consume atomically removes and returns
// the action. Both report false for a token that is unknown or already
// consumed.
type PendingStore interface {
	Create(action PendingAction) (token string)
	Peek(token string) (PendingAction, bool)
	Consume(token string) (PendingAction, bool)
}
