package client

import (
	"context"
	"encoding/json"

	"attendlog.com/attendlog/model"
)

type AttendanceEndpoint struct {
	transport *Transport
}

type submitDTO struct {
	EmployeeID int    `json:"employeeId"`
	Group      string `json:"group,omitempty"`
	Action     string `json:"action"`
}

type resumeDTO struct {
	Token string `json:"token"`
}

// SubmitResult mirrors the server's submit payload.
type SubmitResult struct {
	Event model.AttendanceEvent `json:"event"`
	Token string                `json:"token"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

// Submit records one action for an employee.
func (ep *AttendanceEndpoint) Submit(ctx context.Context, employeeID int, group, action string) (*SubmitResult, error) {
	body, err := ep.transport.Post(ctx, "/api/attendance/actions", submitDTO{
		EmployeeID: employeeID,
		Group:      group,
		Action:     action,
	}, nil)
	if err != nil {
		return nil, err
	}

	var result envelope[SubmitResult]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// Resume closes the timed interruption the token belongs to.
func (ep *AttendanceEndpoint) Resume(ctx context.Context, token string) (*model.AttendanceEvent, error) {
	body, err := ep.transport.Post(ctx, "/api/attendance/actions/resume", resumeDTO{Token: token}, nil)
	if err != nil {
		return nil, err
	}

	var result envelope[model.AttendanceEvent]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

type searchDTO struct {
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	EmployeeID int    `json:"employeeId,omitempty"`
	Name       string `json:"name,omitempty"`
	Group      string `json:"group,omitempty"`
	Kind       string `json:"kind,omitempty"`
}

// SearchFilter narrows a history search; zero values are ignored.
type SearchFilter struct {
	StartDate  string
	EndDate    string
	EmployeeID int
	Name       string
	Group      string
	Kind       string
}

type searchResult struct {
	Data       []model.AttendanceEvent `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

// Search queries the event history. Requires a token with at least the user
// role.
func (ep *AttendanceEndpoint) Search(ctx context.Context, filter SearchFilter) ([]model.AttendanceEvent, int64, error) {
	body, err := ep.transport.Post(ctx, "/api/attendance/search", searchDTO{
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		EmployeeID: filter.EmployeeID,
		Name:       filter.Name,
		Group:      filter.Group,
		Kind:       filter.Kind,
	}, nil)
	if err != nil {
		return nil, 0, err
	}

	var result searchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, 0, err
	}
	return result.Data, result.Pagination.Total, nil
}
