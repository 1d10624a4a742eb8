package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wrtgvr/statusboard/internal/board"
)

// GET /
func (h *HTTPHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := board.Render(&buf, h.board.Snapshot(), h.refresh); err != nil {
		h.log.Error().Err(err).Msg("failed to render dashboard")
		h.internalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GET /api/board
func (h *HTTPHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	h.encodeJSONResponse(w, h.board.Snapshot(), http.StatusOK)
}

// GET /api/board-sse
func (h *HTTPHandler) BoardSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	updates, cancel := h.board.Subscribe()
	defer cancel()

	rc := http.NewResponseController(w)

	// current table first so clients do not wait a whole interval
	if err := h.writeBoardEvent(w, rc, h.board.Snapshot()); err != nil {
		return
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-updates:
			// board settled
			if err := h.writeBoardEvent(w, rc, snap); err != nil {
				h.log.Debug().Err(err).Msg("board stream closed")
				return
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", "heartbeat", "Heartbeat"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func (h *HTTPHandler) writeBoardEvent(w http.ResponseWriter, rc *http.ResponseController, snap board.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", "board", b); err != nil {
		return err
	}
	return rc.Flush()
}
