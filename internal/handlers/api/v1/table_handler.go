// Package v1 serves dice tables over HTTP and streams roll events to
// renderers with server-sent events
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/dice-companion/internal/errors"
	"github.com/KirkDiggler/dice-companion/internal/orchestrators/roll"
	"github.com/KirkDiggler/dice-companion/internal/rules"
	"github.com/KirkDiggler/dice-companion/internal/services/table"
)

// DefaultKeepAlive is how often an idle stream gets a comment line
const DefaultKeepAlive = 25 * time.Second

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 12

// TableHandlerConfig holds dependencies for the table handler
type TableHandlerConfig struct {
	Tables table.Service

	// KeepAlive defaults to DefaultKeepAlive
	KeepAlive time.Duration
}

// Validate ensures all required dependencies are present
func (c *TableHandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Tables == nil {
		vb.RequiredField("Tables")
	}
	if c.KeepAlive < 0 {
		vb.InvalidField("KeepAlive", "cannot be negative")
	}

	return vb.Build()
}

// TableHandler serves the table routes
type TableHandler struct {
	tables    table.Service
	keepAlive time.Duration
}

// NewTableHandler creates a new table handler with the given configuration
func NewTableHandler(cfg *TableHandlerConfig) (*TableHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	keepAlive := cfg.KeepAlive
	if keepAlive == 0 {
		keepAlive = DefaultKeepAlive
	}

	return &TableHandler{
		tables:    cfg.Tables,
		keepAlive: keepAlive,
	}, nil
}

// RegisterRoutes mounts the table routes on r
func (h *TableHandler) RegisterRoutes(r chi.Router) {
	r.Route("/v1/tables/{id}", func(r chi.Router) {
		r.Get("/", h.getTable)
		r.Put("/phase", h.selectPhase)
		r.Post("/rolls", h.startRoll)
		r.Get("/rolls", h.listRolls)
		r.Get("/stream", h.stream)
	})
}

func (h *TableHandler) getTable(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "id")

	session, err := h.tables.Table(r.Context(), tableID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, convertTable(tableID, session))
}

func (h *TableHandler) selectPhase(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "id")

	var req selectPhaseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, errors.InvalidArgument("request body must be JSON with a phase"))
		return
	}

	phase, err := rules.ParsePhase(req.Phase)
	if err != nil {
		writeError(w, err)
		return
	}

	session, err := h.tables.Table(r.Context(), tableID)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := session.SelectPhase(r.Context(), &roll.SelectPhaseInput{Phase: phase})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &selectPhaseResponse{
		Phase:        out.Phase.String(),
		PhaseName:    out.Phase.DisplayName(),
		ActiveDice:   convertDieSet(out.Dice),
		RollInFlight: out.RollInFlight,
	})
}

// startRoll answers 202 because the result is only published after the reveal
func (h *TableHandler) startRoll(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "id")

	session, err := h.tables.Table(r.Context(), tableID)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := session.StartRoll(r.Context(), &roll.StartRollInput{})
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusAccepted
	if !out.Started {
		status = errors.CodeAborted.HTTPStatus()
	}
	writeJSON(w, status, convertStartRoll(out))
}

func (h *TableHandler) listRolls(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "id")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, errors.InvalidArgumentf("invalid limit: %q", raw))
			return
		}
		limit = n
	}

	out, err := h.tables.ListHistory(r.Context(), &table.ListHistoryInput{
		TableID: tableID,
		Limit:   limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := &historyResponse{Rolls: make([]*rollResponse, 0, len(out.Results))}
	for _, result := range out.Results {
		resp.Rolls = append(resp.Rolls, convertRollResult(result))
	}
	writeJSON(w, http.StatusOK, resp)
}

// stream sends the table state once, then every roll event until the
// client goes away or the table closes
func (h *TableHandler) stream(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "id")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, errors.Internal("streaming unsupported"))
		return
	}

	sub, err := h.tables.Subscribe(r.Context(), &table.SubscribeInput{TableID: tableID})
	if err != nil {
		writeError(w, err)
		return
	}
	defer sub.Unsubscribe()

	session, err := h.tables.Table(r.Context(), tableID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	writeSSE(w, "state", convertTable(tableID, session))
	flusher.Flush()

	keepAlive := time.NewTicker(h.keepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case update, ok := <-sub.Updates:
			if !ok {
				return
			}
			writeSSE(w, update.Type, convertUpdate(update))
			flusher.Flush()
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code.HTTPStatus() >= http.StatusInternalServerError {
		slog.Error("Request failed", "code", code, "error", err)
	}

	writeJSON(w, code.HTTPStatus(), &errorResponse{
		Code:    code.String(),
		Message: errors.GetMessage(err),
		Meta:    errors.GetMeta(err),
	})
}

func writeSSE(w http.ResponseWriter, event string, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		slog.Warn("Failed to encode stream event", "event", event, "error", err)
		return
	}
	_, _ = w.Write([]byte("event: " + event + "\n"))
	_, _ = w.Write([]byte("data: " + string(data) + "\n\n"))
}
