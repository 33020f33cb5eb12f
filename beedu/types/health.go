package types

// StatusResponse is the backing-store reachability report. The frontend
// shows a degraded-mode banner when DB is false.
type StatusResponse struct {
	DB           bool   `json:"db"`
	DBConfigured bool   `json:"db_configured"`
	Error        string `json:"error,omitempty"`
}
