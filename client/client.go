// Package client is a small Go SDK for the attendlog HTTP API, meant for
// kiosk agents and reporting scripts.
package client

type Client struct {
	Transport  *Transport
	Attendance *AttendanceEndpoint
}

func New(baseURL string, token string) *Client {
	t := NewTransport(baseURL, token)
	return &Client{
		Transport:  t,
		Attendance: &AttendanceEndpoint{transport: t},
	}
}
