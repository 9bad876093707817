package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendlog.com/attendlog/model"
)

func TestSubmitSendsAuthAndDecodesEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/attendance/actions", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 12, body["employeeId"])
		assert.Equal(t, "time_in", body["action"])

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"event": model.AttendanceEvent{
					ID: 1, EmployeeID: 12, Kind: model.KindTimeIn, Status: model.StatusOnTime,
				},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	result, err := c.Attendance.Submit(context.Background(), 12, "", "time_in")
	require.NoError(t, err)
	assert.Equal(t, model.StatusOnTime, result.Event.Status)
	assert.Empty(t, result.Token)
}

func TestSubmitSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"you have already performed \"Time_In\" today"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.Attendance.Submit(context.Background(), 12, "", "time_in")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 409")
}

func TestSearchDecodesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/attendance/search", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []model.AttendanceEvent{
				{ID: 1, Name: "Aisha Khan", Kind: model.KindTimeInOut},
			},
			"pagination": map[string]any{"total": 7},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	events, total, err := c.Attendance.Search(context.Background(), SearchFilter{StartDate: "2024-03-11"})
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	require.Len(t, events, 1)
	assert.Equal(t, "Aisha Khan", events[0].Name)
}
