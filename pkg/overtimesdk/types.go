package overtimesdk

import (
	"encoding/json"
	"time"
)

// Envelope is the standard response wrapper used by every JSON endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// LoginRequest carries credentials for /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// LoginResponse is the data payload of a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// User is the public shape of an account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	MFA      bool   `json:"mfa_enabled"`
}

// CreateEntryRequest describes one overtime entry to record. Username, when
// set, records on behalf of another account (admin only).
type CreateEntryRequest struct {
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description,omitempty"`
	Username    string `json:"username,omitempty"`
}

// Entry is one recorded overtime entry.
type Entry struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// EntryList carries one owner's entries plus both renderings of the
// aggregate duration.
type EntryList struct {
	Username   string  `json:"username"`
	Entries    []Entry `json:"entries"`
	Count      int     `json:"count"`
	TotalHours string  `json:"total_hours"`
	TotalLabel string  `json:"total_label"`
}

// OverviewRow is one dashboard row: a user and their aggregate totals.
type OverviewRow struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	EntryCount int    `json:"entry_count"`
	Total      int64  `json:"total"` // nanoseconds
	TotalHours string `json:"total_hours"`
	TotalLabel string `json:"total_label"`
}

// Enrollment is returned when TOTP enrollment begins. The secret is shown
// once.
type Enrollment struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	Checks  *struct {
		Database string `json:"database"`
		Signer   string `json:"signer"`
	} `json:"checks,omitempty"`
}
