package core

import (
	"context"
	"strings"
	"sync"
	"time"

	"attendlog.com/attendlog/model"
)

type limitEntry struct {
	kind    model.ActionKind
	minutes int
}

// Machine applies the attendance rules: which action is legal next for an
// employee on a given day, how an open session is matched to its closing
// event, and how elapsed time and lateness are derived. All reads and writes
// against the ledger happen under a single lock, so concurrent submissions
// cannot double-open a session or race on id assignment.
type Machine struct {
	mu      sync.Mutex
	clock   Clock
	ledger  Ledger
	dir     Directory
	pending PendingStore
	policy  *ShiftPolicy

	// lowercased action name -> canonical kind and limit in minutes
	limits map[string]limitEntry
}

// NewMachine wires the machine to its collaborators. limits maps each timed
// interruption's canonical action name to its limit in minutes.
func NewMachine(clock Clock, ledger Ledger, dir Directory, pending PendingStore, policy *ShiftPolicy, limits map[string]int) *Machine {
	entries := make(map[string]limitEntry, len(limits))
	for name, minutes := range limits {
		entries[strings.ToLower(name)] = limitEntry{kind: model.ActionKind(name), minutes: minutes}
	}
	return &Machine{
		clock:   clock,
		ledger:  ledger,
		dir:     dir,
		pending: pending,
		policy:  policy,
		limits:  entries,
	}
}

// Result is the outcome of a submitted action. Token is set only when the
// action opened a timed interruption; the caller must present it to Resume to
// close the interruption.
type Result struct {
	Event model.AttendanceEvent `json:"event"`
	Token string                `json:"token,omitempty"`
}

// InterruptionKinds lists the configured timed-interruption action kinds.
func (m *Machine) InterruptionKinds() []model.ActionKind {
	kinds := make([]model.ActionKind, 0, len(m.limits))
	for _, entry := range m.limits {
		kinds = append(kinds, entry.kind)
	}
	return kinds
}

// Submit records one attendance action for an employee at the clock's current
// instant. Failures carry an ErrorKind telling the caller whether the input
// was invalid, the action was out of sequence, or storage failed.
func (m *Machine) Submit(ctx context.Context, employeeID int, group, action string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.TrimSpace(action) == "" {
		return nil, validationf("no action selected")
	}
	kind, _, isTimed, ok := m.resolveKind(action)
	if !ok {
		return nil, validationf("invalid action %q", action)
	}

	emp, err := m.dir.Lookup(ctx, employeeID)
	if err != nil {
		return nil, storageErr("look up employee", err)
	}
	if emp == nil {
		return nil, validationf("invalid employee selected")
	}
	if strings.TrimSpace(group) == "" {
		group = emp.Group
	}

	now := m.clock.Now()
	date := now.Format(DateLayout)

	if err := m.checkDuplicate(ctx, employeeID, date, kind); err != nil {
		return nil, err
	}
	if kind != model.KindTimeIn && kind != model.KindHalfdayIn && kind != model.KindHalfdayOut {
		open, err := m.openEntry(ctx, employeeID, date, model.KindTimeIn)
		if err != nil {
			return nil, err
		}
		if open == nil {
			return nil, sequencef("you must clock in before performing other actions")
		}
	}

	switch {
	case kind == model.KindTimeIn:
		return m.timeIn(ctx, emp, group, now)
	case kind == model.KindTimeOut:
		return m.timeOut(ctx, emp, now)
	case kind == model.KindHalfdayIn:
		return m.halfdayIn(ctx, emp, group, now)
	case kind == model.KindHalfdayOut:
		return m.halfdayOut(ctx, emp, now)
	case isTimed:
		return m.startInterruption(ctx, emp, group, kind, now)
	default:
		return nil, validationf("invalid action %q", action)
	}
}

// Resume closes a timed interruption previously opened by Submit. The token is
// consumed exactly once, and only after the ledger write succeeds; a failed
// resume leaves the token valid so the caller can retry. Resuming with an
// unknown or already-consumed token fails without touching the ledger.
func (m *Machine) Resume(ctx context.Context, token string) (*model.AttendanceEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.TrimSpace(token) == "" {
		return nil, validationf("missing token")
	}
	action, ok := m.pending.Peek(token)
	if !ok {
		return nil, notFoundf("pending action expired or invalid")
	}

	now := m.clock.Now()
	elapsed := now.Sub(action.StartedAt)

	status := model.StatusOnTime
	overage := ""
	if over, excess := Overage(elapsed, m.limitFor(action.Kind)); over {
		status = model.StatusOverbreak
		overage = excess
	}

	entry, err := m.ledger.FindByID(ctx, action.EntryID)
	if err != nil {
		return nil, storageErr("find ledger entry", err)
	}
	if entry == nil {
		return nil, notFoundf("ledger entry %d not found", action.EntryID)
	}

	endTime := now.Format(ClockLayout)
	elapsedStr := FormatDuration(elapsed)
	err = m.ledger.Update(ctx, entry.ID, map[string]any{
		"end_time": endTime,
		"elapsed":  elapsedStr,
		"lateness": overage,
		"status":   status,
	})
	if err != nil {
		return nil, storageErr("update ledger entry", err)
	}
	m.pending.Consume(token)

	entry.EndTime = endTime
	entry.Elapsed = elapsedStr
	entry.Lateness = overage
	entry.Status = status
	return entry, nil
}

// resolveKind normalizes a submitted action name to its canonical kind.
// Matching is case-insensitive; interruption kinds come from the configured
// limits.
func (m *Machine) resolveKind(action string) (kind model.ActionKind, limitMinutes int, isTimed, ok bool) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case strings.ToLower(string(model.KindTimeIn)):
		return model.KindTimeIn, 0, false, true
	case strings.ToLower(string(model.KindTimeOut)):
		return model.KindTimeOut, 0, false, true
	case strings.ToLower(string(model.KindHalfdayIn)):
		return model.KindHalfdayIn, 0, false, true
	case strings.ToLower(string(model.KindHalfdayOut)):
		return model.KindHalfdayOut, 0, false, true
	}
	if entry, found := m.limits[strings.ToLower(strings.TrimSpace(action))]; found {
		return entry.kind, entry.minutes, true, true
	}
	return "", 0, false, false
}

func (m *Machine) limitFor(kind model.ActionKind) int {
	if entry, ok := m.limits[strings.ToLower(string(kind))]; ok {
		return entry.minutes
	}
	return 0
}

// checkDuplicate rejects a second arrival or departure on the same day. The
// combined pair kind counts against both, so a closed session blocks another
// arrival just like an open one does. Halfday and interruption kinds may
// repeat freely.
func (m *Machine) checkDuplicate(ctx context.Context, employeeID int, date string, kind model.ActionKind) error {
	var against []model.ActionKind
	switch kind {
	case model.KindTimeIn:
		against = []model.ActionKind{model.KindTimeIn, model.KindTimeInOut}
	case model.KindTimeOut:
		against = []model.ActionKind{model.KindTimeOut, model.KindTimeInOut}
	default:
		return nil
	}
	exists, err := m.ledger.ExistsWithKind(ctx, employeeID, date, against...)
	if err != nil {
		return storageErr("check duplicate action", err)
	}
	if exists {
		return sequencef("you have already performed %q today", string(kind))
	}
	return nil
}

// openEntry locates the most recent open entry of the given kind, resolving
// ties by highest id. When the current date has none it also checks the
// previous calendar day, so a session opened before midnight can still be
// closed after it.
func (m *Machine) openEntry(ctx context.Context, employeeID int, date string, kind model.ActionKind) (*model.AttendanceEvent, error) {
	for _, d := range []string{date, previousDay(date)} {
		entries, err := m.ledger.FindOpen(ctx, employeeID, d, kind)
		if err != nil {
			return nil, storageErr("scan open entries", err)
		}
		if len(entries) > 0 {
			return &entries[len(entries)-1], nil
		}
	}
	return nil, nil
}

func previousDay(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

func (m *Machine) timeIn(ctx context.Context, emp *model.Employee, group string, now time.Time) (*Result, error) {
	expected, label := m.policy.ExpectedCheckIn(group, now)

	status := model.StatusOnTime
	lateness := ""
	if expected == nil {
		status = model.StatusInvalid
		label = ""
	} else if now.After(*expected) {
		status = model.StatusLate
		lateness = FormatLateness(now.Sub(*expected))
	}

	ev := model.AttendanceEvent{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Group:      strings.ToUpper(group),
		Kind:       model.KindTimeIn,
		Date:       now.Format(DateLayout),
		StartTime:  now.Format(ClockLayout),
		ShiftLabel: label,
		Lateness:   lateness,
		Status:     status,
	}
	if err := m.ledger.Append(ctx, &ev); err != nil {
		return nil, storageErr("append time-in", err)
	}
	return &Result{Event: ev}, nil
}

func (m *Machine) timeOut(ctx context.Context, emp *model.Employee, now time.Time) (*Result, error) {
	entry, err := m.openEntry(ctx, emp.EmployeeID, now.Format(DateLayout), model.KindTimeIn)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, sequencef("cannot clock out without clocking in first")
	}
	if entry.StartTime == "" {
		return nil, sequencef("start time missing on open clock-in; cannot clock out")
	}

	endTime := now.Format(ClockLayout)
	elapsed, err := Elapsed(entry.StartTime, endTime)
	if err != nil {
		return nil, storageErr("compute elapsed time", err)
	}

	elapsedStr := FormatDuration(elapsed)
	err = m.ledger.Update(ctx, entry.ID, map[string]any{
		"kind":     model.KindTimeInOut,
		"end_time": endTime,
		"elapsed":  elapsedStr,
	})
	if err != nil {
		return nil, storageErr("update time-in entry", err)
	}

	entry.Kind = model.KindTimeInOut
	entry.EndTime = endTime
	entry.Elapsed = elapsedStr
	return &Result{Event: *entry}, nil
}

func (m *Machine) halfdayIn(ctx context.Context, emp *model.Employee, group string, now time.Time) (*Result, error) {
	// Halfday sessions bypass the schedule: no duplicate guard, no lateness.
	ev := model.AttendanceEvent{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Group:      strings.ToUpper(group),
		Kind:       model.KindHalfdayIn,
		Date:       now.Format(DateLayout),
		StartTime:  now.Format(ClockLayout),
		ShiftLabel: LabelHalfday,
		Status:     model.StatusHalfdayIn,
	}
	if err := m.ledger.Append(ctx, &ev); err != nil {
		return nil, storageErr("append halfday time-in", err)
	}
	return &Result{Event: ev}, nil
}

func (m *Machine) halfdayOut(ctx context.Context, emp *model.Employee, now time.Time) (*Result, error) {
	entry, err := m.openEntry(ctx, emp.EmployeeID, now.Format(DateLayout), model.KindHalfdayIn)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, sequencef("cannot halfday time-out without halfday time-in first")
	}
	if entry.StartTime == "" {
		return nil, sequencef("start time missing on halfday time-in; cannot record halfday time-out")
	}

	endTime := now.Format(ClockLayout)
	elapsed, err := Elapsed(entry.StartTime, endTime)
	if err != nil {
		return nil, storageErr("compute elapsed time", err)
	}

	elapsedStr := FormatDuration(elapsed)
	err = m.ledger.Update(ctx, entry.ID, map[string]any{
		"kind":     model.KindHalfdayInOut,
		"end_time": endTime,
		"elapsed":  elapsedStr,
		"status":   model.StatusHalfdayOut,
	})
	if err != nil {
		return nil, storageErr("update halfday entry", err)
	}

	entry.Kind = model.KindHalfdayInOut
	entry.EndTime = endTime
	entry.Elapsed = elapsedStr
	entry.Status = model.StatusHalfdayOut
	return &Result{Event: *entry}, nil
}

func (m *Machine) startInterruption(ctx context.Context, emp *model.Employee, group string, kind model.ActionKind, now time.Time) (*Result, error) {
	ev := model.AttendanceEvent{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Group:      strings.ToUpper(group),
		Kind:       kind,
		Date:       now.Format(DateLayout),
		StartTime:  now.Format(ClockLayout),
	}
	if err := m.ledger.Append(ctx, &ev); err != nil {
		return nil, storageErr("append interruption", err)
	}

	token := m.pending.Create(PendingAction{
		EntryID:    ev.ID,
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Group:      group,
		Kind:       kind,
		StartedAt:  now,
	})
	return &Result{Event: ev, Token: token}, nil
}
