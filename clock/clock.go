package clock

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"attendlog.com/attendlog/core"
)

// System reads the local machine clock in a fixed location.
type System struct {
	Loc *time.Location
}

func (s System) Now() time.Time {
	if s.Loc == nil {
		return time.Now()
	}
	return time.Now().In(s.Loc)
}

// Remote asks a world-time HTTP endpoint for the current instant so that every
// kiosk agrees on the time regardless of its own clock. On any failure it logs
// a warning and falls back to the fallback clock.
type Remote struct {
	URL      string
	Loc      *time.Location
	Client   *http.Client
	Fallback core.Clock
	Log      *zap.Logger
}

type remotePayload struct {
	Datetime string `json:"datetime"`
}

func (r *Remote) Now() time.Time {
	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	resp, err := client.Get(r.URL)
	if err != nil {
		return r.fallback("fetch remote time", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return r.fallback("fetch remote time", nil)
	}

	var payload remotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return r.fallback("decode remote time", err)
	}

	t, err := time.Parse(time.RFC3339Nano, payload.Datetime)
	if err != nil {
		t, err = time.Parse(time.RFC3339, payload.Datetime)
	}
	if err != nil {
		return r.fallback("parse remote time", err)
	}

	if r.Loc != nil {
		return t.In(r.Loc)
	}
	return t
}

func (r *Remote) fallback(op string, err error) time.Time {
	if r.Log != nil {
		r.Log.Warn("remote clock unavailable, using local time",
			zap.String("op", op), zap.Error(err))
	}
	if r.Fallback != nil {
		return r.Fallback.Now()
	}
	return System{Loc: r.Loc}.Now()
}
