package overtimesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Session is an authenticated handle on the service. It carries the bearer
// token from Login; the User field is the identity at login time.
type Session struct {
	client *Client
	token  string

	User User
}

// Token returns the raw session token, e.g. for storing between runs.
func (s *Session) Token() string {
	return s.token
}

// Me fetches the caller's current profile.
func (s *Session) Me(ctx context.Context) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeEnvelope(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the server-side session cookie. The bearer token itself
// remains valid until it expires.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil, http.StatusOK)
}

// CreateEntry records one overtime entry.
func (s *Session) CreateEntry(ctx context.Context, req CreateEntryRequest) (*Entry, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entry: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/entries", bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := decodeEnvelope(resp, &entry, http.StatusCreated); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntries fetches entries and aggregate totals. username is the target
// account (admin only); empty means the caller's own entries.
func (s *Session) ListEntries(ctx context.Context, username string) (*EntryList, error) {
	path := "/v1/entries"
	if username != "" {
		path += "?username=" + url.QueryEscape(username)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var list EntryList
	if err := decodeEnvelope(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteEntry permanently deletes one entry by id.
func (s *Session) DeleteEntry(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/entries/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil, http.StatusOK)
}

// ExportCSV downloads the CSV statement for username (empty for the caller)
// and returns the raw CSV bytes plus the Content-Disposition header.
func (s *Session) ExportCSV(ctx context.Context, username string) ([]byte, string, error) {
	path := "/v1/entries/export"
	if username != "" {
		path += "?username=" + url.QueryEscape(username)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var env Envelope
		_ = json.Unmarshal(body, &env)
		return nil, "", &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return body, resp.Header.Get("Content-Disposition"), nil
}

// Dashboard fetches the aggregate overview rows visible to the caller.
func (s *Session) Dashboard(ctx context.Context) ([]OverviewRow, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/dashboard", nil, nil)
	if err != nil {
		return nil, err
	}

	var rows []OverviewRow
	if err := decodeEnvelope(resp, &rows, http.StatusOK); err != nil {
		return nil, err
	}
	return rows, nil
}

// EnrollTOTP begins TOTP enrollment for the caller.
func (s *Session) EnrollTOTP(ctx context.Context) (*Enrollment, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/mfa/enroll", nil, nil)
	if err != nil {
		return nil, err
	}

	var enrollment Enrollment
	if err := decodeEnvelope(resp, &enrollment, http.StatusOK); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ActivateTOTP confirms the pending enrollment with a current code.
func (s *Session) ActivateTOTP(ctx context.Context, code string) error {
	return s.postTOTPCode(ctx, "/v1/mfa/activate", code)
}

// DisableTOTP disables MFA after verifying a current code.
func (s *Session) DisableTOTP(ctx context.Context, code string) error {
	return s.postTOTPCode(ctx, "/v1/mfa/disable", code)
}

func (s *Session) postTOTPCode(ctx context.Context, path, code string) error {
	body, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return fmt.Errorf("failed to encode code: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil, http.StatusOK)
}
