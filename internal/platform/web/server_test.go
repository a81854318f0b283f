package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/candy-arcade/internal/games/candy"
	"github.com/vovakirdan/candy-arcade/internal/storage"
)

func startServer(t *testing.T) (*httptest.Server, *storage.Memory) {
	t.Helper()
	scores := storage.NewMemory()
	srv := NewServer(DefaultServerConfig(), scores, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, scores
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusSwitchingProtocols)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func roundTrip(t *testing.T, ws *websocket.Conn, typ, id string, payload any) WSResponse {
	t.Helper()
	msg := WSMessage{Type: typ, ID: id}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		msg.Payload = raw
	}
	if err := ws.WriteJSON(msg); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return read(t, ws)
}

// rawResponse keeps the payload undecoded so tests can pick its shape.
type rawResponse struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
	Error   string          `json:"error"`
}

func read(t *testing.T, ws *websocket.Conn) WSResponse {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var resp rawResponse
	if err := ws.ReadJSON(&resp); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return WSResponse{Type: resp.Type, ID: resp.ID, Payload: resp.Payload, Error: resp.Error}
}

func payloadAs[T any](t *testing.T, resp WSResponse) T {
	t.Helper()
	var v T
	raw, ok := resp.Payload.(json.RawMessage)
	if !ok {
		t.Fatalf("payload is %T", resp.Payload)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("Unmarshal payload: %v", err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	ts, _ := startServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q, want 200 \"ok\"", resp.StatusCode, body)
	}
}

func TestWebSocketPing(t *testing.T) {
	ts, _ := startServer(t)
	ws := dial(t, ts)

	resp := roundTrip(t, ws, TypePing, "ping-1", nil)
	if resp.Type != TypePong || resp.ID != "ping-1" {
		t.Errorf("got %+v, want pong ping-1", resp)
	}
}

func TestWebSocketErrors(t *testing.T) {
	ts, _ := startServer(t)
	ws := dial(t, ts)

	tests := []struct {
		name    string
		typ     string
		payload any
		want    string
	}{
		{"state before new", TypeState, nil, "no session"},
		{"swap before new", TypeSwap, SwapRequest{}, "no session"},
		{"unknown type", "explode", nil, "unknown message type"},
		{"grid too small", TypeNew, NewRequest{GridSize: 2}, "invalid options"},
		{"grid too large", TypeNew, NewRequest{GridSize: 1 << 32}, "invalid options"},
		{"grid one past max", TypeNew, NewRequest{GridSize: candy.MaxGridSize + 1}, "invalid options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := roundTrip(t, ws, tt.typ, tt.name, tt.payload)
			if resp.Type != TypeError || !strings.Contains(resp.Error, tt.want) {
				t.Errorf("got %+v, want error containing %q", resp, tt.want)
			}
			if resp.ID != tt.name {
				t.Errorf("ID = %q, want %q", resp.ID, tt.name)
			}
		})
	}

	// The connection survives every rejected request.
	if resp := roundTrip(t, ws, TypePing, "after", nil); resp.Type != TypePong {
		t.Errorf("ping after errors: got %+v", resp)
	}
}

func TestWebSocketGame(t *testing.T) {
	ts, _ := startServer(t)
	ws := dial(t, ts)

	resp := roundTrip(t, ws, TypeNew, "n1", NewRequest{GridSize: 5, TargetScore: 1_000_000, Seed: 7})
	if resp.Type != TypeState {
		t.Fatalf("new: got %+v", resp)
	}
	st := payloadAs[StatePayload](t, resp)
	if len(st.Board) != 5 || len(st.Board[0]) != 5 {
		t.Errorf("board = %v, want 5x5", st.Board)
	}
	if st.MovesRemaining != 20 || st.TargetScore != 1_000_000 || st.Phase != "idle" {
		t.Errorf("state = %+v, want default moves", st)
	}

	// Out-of-bounds swap is an error and costs nothing.
	resp = roundTrip(t, ws, TypeSwap, "s0", SwapRequest{B: candyPos(0, 9)})
	if resp.Type != TypeError || !strings.Contains(resp.Error, "out of bounds") {
		t.Errorf("oob swap: got %+v", resp)
	}

	// Non-adjacent swap is rejected without spending a move.
	resp = roundTrip(t, ws, TypeSwap, "s1", SwapRequest{A: candyPos(0, 0), B: candyPos(2, 2)})
	sw := payloadAs[SwapPayload](t, resp)
	if resp.Type != TypeSwap || !sw.Attempted || sw.Accepted || sw.MovesRemaining != 20 {
		t.Errorf("non-adjacent swap: got %+v", sw)
	}

	resp = roundTrip(t, ws, TypeSwap, "s2", SwapRequest{A: candyPos(0, 0), B: candyPos(0, 1)})
	sw = payloadAs[SwapPayload](t, resp)
	if !sw.Accepted || sw.MovesRemaining != 19 || len(sw.Board) != 5 {
		t.Errorf("adjacent swap: got %+v", sw)
	}

	// First tap only selects.
	resp = roundTrip(t, ws, TypeTap, "t1", candyPos(3, 3))
	sw = payloadAs[SwapPayload](t, resp)
	if sw.Attempted {
		t.Errorf("first tap should only select, got %+v", sw)
	}
	resp = roundTrip(t, ws, TypeState, "st", nil)
	st = payloadAs[StatePayload](t, resp)
	if st.Phase != "awaiting_second_tap" || st.Selection == nil || *st.Selection != candyPos(3, 3) {
		t.Errorf("state after tap = %+v", st)
	}
}

func TestWebSocketNotifiesLoss(t *testing.T) {
	ts, _ := startServer(t)
	ws := dial(t, ts)

	roundTrip(t, ws, TypeNew, "n", NewRequest{GridSize: 4, MoveBudget: 1, TargetScore: 1_000_000, Seed: 3})
	resp := roundTrip(t, ws, TypeSwap, "s", SwapRequest{A: candyPos(1, 1), B: candyPos(1, 2)})
	if resp.Type != TypeSwap {
		t.Fatalf("swap: got %+v", resp)
	}

	note := read(t, ws)
	if note.Type != TypeNotify {
		t.Fatalf("expected notify, got %+v", note)
	}
	np := payloadAs[NotifyPayload](t, note)
	if np.Outcome != "loss" || np.GameID != "candy" {
		t.Errorf("notify = %+v, want candy loss", np)
	}
}
