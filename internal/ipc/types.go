package ipc

// StartRequest triggers the attach monitor.
type StartRequest struct{}

// StartResponse indicates whether the daemon was started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest stops the attach monitor.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// SessionCounters summarizes timer activity within the current session.
type SessionCounters struct {
	Resets   uint64 `json:"resets"`
	Splits   uint64 `json:"splits"`
	Pauses   uint64 `json:"pauses"`
	Resumes  uint64 `json:"resumes"`
	Filtered uint64 `json:"filtered"`
}

// StatusResponse represents combined daemon/session status information.
type StatusResponse struct {
	Running        bool            `json:"running"`
	DaemonPID      int             `json:"daemon_pid"`
	Attached       bool            `json:"attached"`
	GamePID        int             `json:"game_pid"`
	SessionID      string          `json:"session_id"`
	State          string          `json:"state"`
	Counters       SessionCounters `json:"counters"`
	Settings       SettingsPayload `json:"settings"`
	LockPath       string          `json:"lock_path"`
	SettingsDBPath string          `json:"settings_db_path"`
	SocketPath     string          `json:"socket_path"`
}

// SettingsGetRequest fetches the current split toggles.
type SettingsGetRequest struct{}

// SettingsPayload carries the split toggles over the wire.
type SettingsPayload struct {
	Splits     map[string]bool `json:"splits"`
	StopOnLoad bool            `json:"stop_on_load"`
}

// SettingsGetResponse contains the current split toggles.
type SettingsGetResponse struct {
	Settings SettingsPayload `json:"settings"`
}

// SettingsSetRequest toggles one setting. Name is a split category or
// "stop_on_load".
type SettingsSetRequest struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// SettingsSetResponse contains the toggles after the change.
type SettingsSetResponse struct {
	Settings SettingsPayload `json:"settings"`
}
