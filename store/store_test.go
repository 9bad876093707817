package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"attendlog.com/attendlog/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	s, err := New(db)
	require.NoError(t, err)
	return s
}

func seedEvent(t *testing.T, s *Store, ev model.AttendanceEvent) model.AttendanceEvent {
	t.Helper()
	require.NoError(t, s.Append(context.Background(), &ev))
	return ev
}

func TestAppendAssignsIncreasingIDs(t *testing.T) {
	s := newTestStore(t)

	first := seedEvent(t, s, model.AttendanceEvent{EmployeeID: 1, Date: "2024-03-11", Kind: model.KindTimeIn})
	second := seedEvent(t, s, model.AttendanceEvent{EmployeeID: 2, Date: "2024-03-11", Kind: model.KindTimeIn})

	assert.Greater(t, second.ID, first.ID)
}

func TestFindOpenFiltersClosedRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	open := seedEvent(t, s, model.AttendanceEvent{
		EmployeeID: 7, Date: "2024-03-11", Kind: model.KindTimeIn, StartTime: "08:00:00",
	})
	seedEvent(t, s, model.AttendanceEvent{
		EmployeeID: 7, Date: "2024-03-11", Kind: model.ActionKind("BREAK1"),
		StartTime: "10:00:00", EndTime: "10:20:00",
	})

	events, err := s.FindOpen(ctx, 7, "2024-03-11", model.KindTimeIn)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, open.ID, events[0].ID)

	events, err = s.FindOpen(ctx, 7, "2024-03-11", model.ActionKind("BREAK1"))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestFindByIDMissingReturnsNil(t *testing.T) {
	s := newTestStore(t)

	ev, err := s.FindByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestUpdateWritesSelectedColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ev := seedEvent(t, s, model.AttendanceEvent{
		EmployeeID: 3, Date: "2024-03-11", Kind: model.KindTimeIn,
		StartTime: "08:00:00", Status: model.StatusOnTime,
	})

	err := s.Update(ctx, ev.ID, map[string]any{
		"kind":     model.KindTimeInOut,
		"end_time": "17:00:00",
		"elapsed":  "9 hrs",
	})
	require.NoError(t, err)

	got, err := s.FindByID(ctx, ev.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.KindTimeInOut, got.Kind)
	assert.Equal(t, "17:00:00", got.EndTime)
	assert.Equal(t, "9 hrs", got.Elapsed)
	assert.Equal(t, model.StatusOnTime, got.Status)
}

func TestUpdateUnknownIDFails(t *testing.T) {
	s := newTestStore(t)

	err := s.Update(context.Background(), 42, map[string]any{"end_time": "17:00:00"})
	require.Error(t, err)
}

func TestExistsWithKindMatchesAnyListedKind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEvent(t, s, model.AttendanceEvent{
		EmployeeID: 5, Date: "2024-03-11", Kind: model.KindTimeInOut,
	})

	exists, err := s.ExistsWithKind(ctx, 5, "2024-03-11", model.KindTimeIn, model.KindTimeInOut)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ExistsWithKind(ctx, 5, "2024-03-12", model.KindTimeIn, model.KindTimeInOut)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSearchEventsFiltersAndPages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for day := 11; day <= 13; day++ {
		seedEvent(t, s, model.AttendanceEvent{
			EmployeeID: 1, Name: "Aisha Khan", Group: "ASSEMBLER",
			Kind: model.KindTimeInOut, Date: fmt.Sprintf("2024-03-%02d", day),
		})
	}
	seedEvent(t, s, model.AttendanceEvent{
		EmployeeID: 2, Name: "Bilal Ahmed", Group: "MQM",
		Kind: model.KindTimeIn, Date: "2024-03-12",
	})

	events, total, err := s.SearchEvents(ctx, SearchParams{DateFrom: "2024-03-12", DateTo: "2024-03-13"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, events, 3)

	events, total, err = s.SearchEvents(ctx, SearchParams{EmployeeID: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, events, 2)
	// Newest first.
	assert.Equal(t, "2024-03-13", events[0].Date)

	events, _, err = s.SearchEvents(ctx, SearchParams{Name: "bilal"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 2, events[0].EmployeeID)
}

func TestPurgeDuplicatesKeepsFirstPerDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	keep := seedEvent(t, s, model.AttendanceEvent{EmployeeID: 1, Date: "2024-03-11", Kind: model.KindTimeIn, StartTime: "08:00:00"})
	seedEvent(t, s, model.AttendanceEvent{EmployeeID: 1, Date: "2024-03-11", Kind: model.KindTimeIn, StartTime: "08:01:00"})
	seedEvent(t, s, model.AttendanceEvent{EmployeeID: 1, Date: "2024-03-11", Kind: model.ActionKind("Toilet"), StartTime: "09:00:00"})
	seedEvent(t, s, model.AttendanceEvent{EmployeeID: 1, Date: "2024-03-11", Kind: model.ActionKind("Toilet"), StartTime: "11:00:00"})

	removed, err := s.PurgeDuplicates(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	events, _, err := s.SearchEvents(ctx, SearchParams{EmployeeID: 1})
	require.NoError(t, err)
	// Both breaks survive, only the duplicate clock-in is gone.
	assert.Len(t, events, 3)

	survivor, err := s.FindByID(ctx, keep.ID)
	require.NoError(t, err)
	require.NotNil(t, survivor)
	assert.Equal(t, "08:00:00", survivor.StartTime)
}

func TestCreateEmployeeAssignsNextCode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := model.Employee{Name: "Aisha Khan", Group: "assembler"}
	require.NoError(t, s.CreateEmployee(ctx, &first))
	assert.Equal(t, "0001", first.Code)

	second := model.Employee{Name: "Bilal Ahmed", Group: "mqm"}
	require.NoError(t, s.CreateEmployee(ctx, &second))
	assert.Equal(t, "0002", second.Code)

	found, err := s.FindEmployeeByCode(ctx, "0002")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Bilal Ahmed", found.Name)
}

func TestEmployeeLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	emp := model.Employee{Name: "Aisha Khan", Group: "assembler"}
	require.NoError(t, s.CreateEmployee(ctx, &emp))

	emp.Name = "Aisha K."
	emp.Group = "trainer"
	require.NoError(t, s.UpdateEmployee(ctx, &emp))

	got, err := s.Lookup(ctx, emp.EmployeeID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Aisha K.", got.Name)
	assert.Equal(t, "trainer", got.Group)

	require.NoError(t, s.DeleteEmployee(ctx, emp.EmployeeID))
	got, err = s.Lookup(ctx, emp.EmployeeID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.Error(t, s.DeleteEmployee(ctx, emp.EmployeeID))
}
