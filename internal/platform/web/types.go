package web

import (
	"encoding/json"
	"strings"

	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/games/candy"
)

// Message types understood by the socket.
const (
	TypeNew   = "new"
	TypeSwap  = "swap"
	TypeTap   = "tap"
	TypeState = "state"
	TypePing  = "ping"

	TypePong   = "pong"
	TypeError  = "error"
	TypeNotify = "notify"
)

// WSMessage is a client request.
type WSMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse is sent back for every request, plus unsolicited notify messages.
type WSResponse struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewRequest starts a session. Zero fields fall back to the server defaults.
type NewRequest struct {
	GridSize    int   `json:"gridSize"`
	MoveBudget  int   `json:"moveBudget"`
	TargetScore int   `json:"targetScore"`
	Seed        int64 `json:"seed"`
}

// SwapRequest asks to swap two cells.
type SwapRequest struct {
	A candy.Pos `json:"a"`
	B candy.Pos `json:"b"`
}

// StatePayload is the wire form of candy.State. Rows hold piece letters.
type StatePayload struct {
	Board          []string   `json:"board"`
	Score          int        `json:"score"`
	MovesRemaining int        `json:"movesRemaining"`
	TargetScore    int        `json:"targetScore"`
	HighScore      int        `json:"highScore"`
	Selection      *candy.Pos `json:"selection,omitempty"`
	Phase          string     `json:"phase"`
	Won            bool       `json:"won"`
	MovesExhausted bool       `json:"movesExhausted"`
}

// SwapPayload is the wire form of candy.SwapResult.
type SwapPayload struct {
	Attempted      bool     `json:"attempted"`
	Accepted       bool     `json:"accepted"`
	ScoreDelta     int      `json:"scoreDelta"`
	Cycles         int      `json:"cycles"`
	Board          []string `json:"board"`
	MovesRemaining int      `json:"movesRemaining"`
}

// NotifyPayload reports a finished session.
type NotifyPayload struct {
	GameID  string `json:"gameId"`
	Outcome string `json:"outcome"`
	Score   int    `json:"score"`
}

func boardRows(b *candy.Board) []string {
	if b == nil {
		return nil
	}
	return strings.Split(b.String(), "\n")
}

func statePayload(st candy.State) StatePayload {
	return StatePayload{
		Board:          boardRows(st.Board),
		Score:          st.Score,
		MovesRemaining: st.MovesRemaining,
		TargetScore:    st.TargetScore,
		HighScore:      st.HighScore,
		Selection:      st.Selection,
		Phase:          st.Phase.String(),
		Won:            st.Won,
		MovesExhausted: st.MovesExhausted,
	}
}

func swapPayload(r candy.SwapResult) SwapPayload {
	return SwapPayload{
		Attempted:      r.Attempted,
		Accepted:       r.Accepted,
		ScoreDelta:     r.ScoreDelta,
		Cycles:         r.Cascade.Cycles,
		Board:          boardRows(r.Board),
		MovesRemaining: r.MovesRemaining,
	}
}

func notifyPayload(o core.Outcome) NotifyPayload {
	return NotifyPayload{GameID: o.GameID, Outcome: o.Kind.String(), Score: o.Score}
}
