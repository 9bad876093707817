package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"attendlog.com/attendlog/model"
)

// Store keeps attendance events and the employee roster in one database. It
// satisfies the machine's Ledger and Directory interfaces.
type Store struct {
	db *gorm.DB
}

// Open connects to MySQL and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return New(db)
}

// New wraps an existing gorm connection; tests hand in sqlite here.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&model.Employee{}, &model.AttendanceEvent{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Append(ctx context.Context, ev *model.AttendanceEvent) error {
	return s.db.WithContext(ctx).Create(ev).Error
}

func (s *Store) FindOpen(ctx context.Context, employeeID int, date string, kind model.ActionKind) ([]model.AttendanceEvent, error) {
	var events []model.AttendanceEvent
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND date = ? AND kind = ? AND end_time = ''", employeeID, date, kind).
		Order("id ASC").
		Find(&events).Error
	return events, err
}

func (s *Store) FindByID(ctx context.Context, id int64) (*model.AttendanceEvent, error) {
	var ev model.AttendanceEvent
	err := s.db.WithContext(ctx).First(&ev, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *Store) Update(ctx context.Context, id int64, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&model.AttendanceEvent{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no attendance event with id %d", id)
	}
	return nil
}

func (s *Store) ExistsWithKind(ctx context.Context, employeeID int, date string, kinds ...model.ActionKind) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.AttendanceEvent{}).
		Where("employee_id = ? AND date = ? AND kind IN ?", employeeID, date, kinds).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) Lookup(ctx context.Context, employeeID int) (*model.Employee, error) {
	var emp model.Employee
	err := s.db.WithContext(ctx).First(&emp, employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// SearchParams filters the event history. Zero values mean "no filter".
type SearchParams struct {
	EmployeeID int
	Name       string
	Group      string
	Kind       model.ActionKind
	DateFrom   string
	DateTo     string
	Limit      int
	Offset     int
}

// SearchEvents returns a page of matching events, newest first, plus the total
// match count before paging.
func (s *Store) SearchEvents(ctx context.Context, params SearchParams) ([]model.AttendanceEvent, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.AttendanceEvent{})
	if params.EmployeeID != 0 {
		q = q.Where("employee_id = ?", params.EmployeeID)
	}
	if params.Name != "" {
		q = q.Where("name LIKE ?", "%"+params.Name+"%")
	}
	if params.Group != "" {
		q = q.Where("emp_group = ?", strings.ToUpper(params.Group))
	}
	if params.Kind != "" {
		q = q.Where("kind = ?", params.Kind)
	}
	if params.DateFrom != "" {
		q = q.Where("date >= ?", params.DateFrom)
	}
	if params.DateTo != "" {
		q = q.Where("date <= ?", params.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Limit > 0 {
		q = q.Limit(params.Limit)
	}
	if params.Offset > 0 {
		q = q.Offset(params.Offset)
	}

	var events []model.AttendanceEvent
	err := q.Order("id DESC").Find(&events).Error
	return events, total, err
}

// EventsBetween returns all events in the inclusive date range ordered by id,
// used by the spreadsheet export.
func (s *Store) EventsBetween(ctx context.Context, dateFrom, dateTo string) ([]model.AttendanceEvent, error) {
	var events []model.AttendanceEvent
	q := s.db.WithContext(ctx).Model(&model.AttendanceEvent{})
	if dateFrom != "" {
		q = q.Where("date >= ?", dateFrom)
	}
	if dateTo != "" {
		q = q.Where("date <= ?", dateTo)
	}
	err := q.Order("id ASC").Find(&events).Error
	return events, err
}

// PurgeDuplicates removes repeated arrival and departure rows for the same
// employee, day, and kind, keeping the earliest by id. Interruption and
// halfday rows may legitimately repeat, so they are left alone.
func (s *Store) PurgeDuplicates(ctx context.Context) (int64, error) {
	guarded := []model.ActionKind{
		model.KindTimeIn, model.KindTimeOut, model.KindTimeInOut,
	}

	var events []model.AttendanceEvent
	err := s.db.WithContext(ctx).
		Where("kind IN ?", guarded).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(events))
	var stale []int64
	for _, ev := range events {
		key := fmt.Sprintf("%d|%s|%s", ev.EmployeeID, ev.Date, ev.Kind)
		if seen[key] {
			stale = append(stale, ev.ID)
			continue
		}
		seen[key] = true
	}
	if len(stale) == 0 {
		return 0, nil
	}

	res := s.db.WithContext(ctx).Delete(&model.AttendanceEvent{}, stale)
	return res.RowsAffected, res.Error
}

func (s *Store) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := s.db.WithContext(ctx).Order("employee_id ASC").Find(&employees).Error
	return employees, err
}

// CreateEmployee inserts a new roster entry, assigning the next zero-padded
// code when none is given.
func (s *Store) CreateEmployee(ctx context.Context, emp *model.Employee) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if emp.Code == "" {
			var last model.Employee
			err := tx.Order("employee_id DESC").First(&last).Error
			next := 1
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
			case err != nil:
				return err
			default:
				next = last.EmployeeID + 1
			}
			emp.Code = fmt.Sprintf("%04d", next)
		}
		return tx.Create(emp).Error
	})
}

func (s *Store) UpdateEmployee(ctx context.Context, emp *model.Employee) error {
	res := s.db.WithContext(ctx).Model(&model.Employee{}).
		Where("employee_id = ?", emp.EmployeeID).
		Updates(map[string]any{"name": emp.Name, "emp_group": emp.Group})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no employee with id %d", emp.EmployeeID)
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, employeeID int) error {
	res := s.db.WithContext(ctx).Delete(&model.Employee{}, employeeID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no employee with id %d", employeeID)
	}
	return nil
}

// FindEmployeeByCode resolves a badge code, nil when unknown.
func (s *Store) FindEmployeeByCode(ctx context.Context, code string) (*model.Employee, error) {
	var emp model.Employee
	err := s.db.WithContext(ctx).Where(&model.Employee{Code: code}).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}
