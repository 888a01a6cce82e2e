// Package client provides commands that drive a running dice companion
// server over HTTP
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Connection flags
	serverAddr string
	tableID    string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for a running dice companion server",
	Long:  `Client commands drive a table on a running server by making real HTTP requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "http://localhost:8080", "Server base URL")
	ClientCmd.PersistentFlags().StringVar(&tableID, "table", "default", "Table ID")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(stateCmd)
	ClientCmd.AddCommand(phaseCmd)
	ClientCmd.AddCommand(rollCmd)
	ClientCmd.AddCommand(historyCmd)
}

type die struct {
	Die        int    `json:"die"`
	Face       int    `json:"face"`
	Token      string `json:"token"`
	ImageIndex *int   `json:"image_index"`
	ImagePath  string `json:"image_path"`
	Outcome    string `json:"outcome"`
}

type rollResult struct {
	RollID           string    `json:"roll_id"`
	Phase            string    `json:"phase"`
	Total            int       `json:"total"`
	OutcomeLines     []string  `json:"outcome_lines"`
	DoublesTriggered bool      `json:"doubles_triggered"`
	Dice             []die     `json:"dice"`
	RolledAt         time.Time `json:"rolled_at"`
}

type tableState struct {
	TableID     string      `json:"table_id"`
	Phase       string      `json:"phase"`
	PhaseName   string      `json:"phase_name"`
	Status      string      `json:"status"`
	Rolling     bool        `json:"rolling"`
	ActiveDice  []int       `json:"active_dice"`
	ResultLines []string    `json:"result_lines"`
	LastRoll    *rollResult `json:"last_roll"`
}

type phaseSelection struct {
	Phase        string `json:"phase"`
	PhaseName    string `json:"phase_name"`
	ActiveDice   []int  `json:"active_dice"`
	RollInFlight bool   `json:"roll_in_flight"`
}

type rollStart struct {
	Started bool   `json:"started"`
	Status  string `json:"status"`
	RollID  string `json:"roll_id"`
	Phase   string `json:"phase"`
	Dice    []die  `json:"dice"`
}

type streamEvent struct {
	Name    string      `json:"-"`
	TableID string      `json:"table_id"`
	RollID  string      `json:"roll_id"`
	Die     *die        `json:"die"`
	Lines   []string    `json:"lines"`
	Result  *rollResult `json:"result"`
}

type apiError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d %s: %s", e.Status, e.Code, e.Message)
}

// apiClient talks to one table on the server
type apiClient struct {
	http    *http.Client
	baseURL string
	tableID string
}

func newAPIClient(base, table string) *apiClient {
	return &apiClient{
		http:    &http.Client{},
		baseURL: strings.TrimRight(base, "/"),
		tableID: table,
	}
}

func (c *apiClient) tableURL(suffix string) string {
	return fmt.Sprintf("%s/v1/tables/%s%s", c.baseURL, url.PathEscape(c.tableID), suffix)
}

// do sends a request and decodes the JSON reply into out. Statuses listed
// in accept are decoded as success.
func (c *apiClient) do(ctx context.Context, method, target string, body, out any, accept ...int) (int, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to reach server: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	if !acceptable(resp.StatusCode, accept) {
		apiErr := &apiError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return resp.StatusCode, apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func acceptable(status int, accept []int) bool {
	if len(accept) == 0 {
		return status == http.StatusOK
	}
	for _, s := range accept {
		if s == status {
			return true
		}
	}
	return false
}

func (c *apiClient) getTable(ctx context.Context) (*tableState, error) {
	var out tableState
	if _, err := c.do(ctx, http.MethodGet, c.tableURL(""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) selectPhase(ctx context.Context, phase string) (*phaseSelection, error) {
	var out phaseSelection
	body := map[string]string{"phase": phase}
	if _, err := c.do(ctx, http.MethodPut, c.tableURL("/phase"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) startRoll(ctx context.Context) (*rollStart, error) {
	var out rollStart
	if _, err := c.do(ctx, http.MethodPost, c.tableURL("/rolls"), nil, &out,
		http.StatusAccepted, http.StatusConflict); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) listRolls(ctx context.Context, limit int) ([]rollResult, error) {
	target := c.tableURL("/rolls")
	if limit > 0 {
		target = fmt.Sprintf("%s?limit=%d", target, limit)
	}

	var out struct {
		Rolls []rollResult `json:"rolls"`
	}
	if _, err := c.do(ctx, http.MethodGet, target, nil, &out); err != nil {
		return nil, err
	}
	return out.Rolls, nil
}

// openStream connects to the table stream and consumes the initial state
// event, so every later roll event is delivered on the returned channel.
// The channel closes when ctx ends or the server hangs up.
func (c *apiClient) openStream(ctx context.Context) (*tableState, <-chan streamEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL("/stream"), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reach server: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer func() {
			_ = resp.Body.Close() // nolint:errcheck // safe to ignore in cleanup
		}()
		apiErr := &apiError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return nil, nil, apiErr
	}

	scanner := bufio.NewScanner(resp.Body)
	name, data, err := nextSSE(scanner)
	if err != nil || name != "state" {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("stream did not start with the table state")
	}
	var state tableState
	if err := json.Unmarshal(data, &state); err != nil {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("failed to decode table state: %w", err)
	}

	events := make(chan streamEvent)
	go func() {
		defer close(events)
		defer func() {
			_ = resp.Body.Close() // nolint:errcheck // safe to ignore in cleanup
		}()

		for {
			name, data, err := nextSSE(scanner)
			if err != nil {
				return
			}
			event := streamEvent{Name: name}
			if err := json.Unmarshal(data, &event); err != nil {
				return
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return &state, events, nil
}

// nextSSE reads one event, skipping keepalive comments
func nextSSE(scanner *bufio.Scanner) (string, []byte, error) {
	var name string
	var data []byte
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if name != "" || data != nil {
				return name, data, nil
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: ")...)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", nil, err
	}
	return "", nil, io.EOF
}
