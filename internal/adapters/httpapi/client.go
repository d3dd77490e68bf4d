package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the thin API client the wall and church processes use to
// obtain join credentials before dialing the media provider.
type Client struct {
	base string
	hc   *http.Client
}

func NewClient(base string) *Client {
	return &Client{base: base, hc: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", path, apiErr.Error)
		}
		return fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// JoinService admits a church into the service behind the session code
// and returns the publisher credential.
func (c *Client) JoinService(ctx context.Context, code, churchName string) (*JoinResponse, error) {
	var out JoinResponse
	err := c.postJSON(ctx, "/api/session/join", joinRequest{Code: code, ChurchName: churchName}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LeaveService closes the church's session record.
func (c *Client) LeaveService(ctx context.Context, sessionID string) error {
	var out struct {
		OK bool `json:"ok"`
	}
	return c.postJSON(ctx, "/api/session/leave", leaveRequest{SessionID: sessionID}, &out)
}

// WallCredential fetches a receive-only viewer credential for the grid.
func (c *Client) WallCredential(ctx context.Context, code string) (*CredentialResponse, error) {
	var out CredentialResponse
	err := c.postJSON(ctx, "/api/credential", credentialRequest{Code: code, Role: "wall"}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
