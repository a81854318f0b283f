package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/candy-arcade/internal/config"
	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/games/candy"
)

const sendBuffer = 64

var errNoSession = errors.New("no session: send a \"new\" message first")

// client owns one connection and at most one candy session. Requests are
// handled one at a time on the read loop.
type client struct {
	conn    *websocket.Conn
	defs    config.CandyConfig
	scores  core.HighScoreStore
	logger  *log.Logger
	send    chan WSResponse
	session *candy.Session
	pending []core.Outcome // Outcomes raised while handling the current request
}

func newClient(conn *websocket.Conn, defs config.CandyConfig, scores core.HighScoreStore, logger *log.Logger) *client {
	return &client{
		conn:   conn,
		defs:   defs,
		scores: scores,
		logger: logger,
		send:   make(chan WSResponse, sendBuffer),
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			c.logger.Debug("write failed", "error", err)
			return
		}
	}
}

func (c *client) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
	}()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("read failed", "error", err)
			}
			return
		}
		c.send <- c.handle(msg)
		c.flushOutcomes()
	}
}

func (c *client) handle(msg WSMessage) WSResponse {
	var (
		payload any
		err     error
	)
	switch msg.Type {
	case TypePing:
		return WSResponse{Type: TypePong, ID: msg.ID}
	case TypeNew:
		payload, err = c.handleNew(msg.Payload)
	case TypeSwap:
		payload, err = c.handleSwap(msg.Payload)
	case TypeTap:
		payload, err = c.handleTap(msg.Payload)
	case TypeState:
		payload, err = c.handleState()
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		return WSResponse{Type: TypeError, ID: msg.ID, Error: err.Error()}
	}

	typ := TypeState
	if msg.Type == TypeSwap || msg.Type == TypeTap {
		typ = TypeSwap
	}
	return WSResponse{Type: typ, ID: msg.ID, Payload: payload}
}

func (c *client) handleNew(raw json.RawMessage) (any, error) {
	var req NewRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := candy.Options{
		GridSize:         req.GridSize,
		Kinds:            c.defs.Board.Kinds,
		MoveBudget:       req.MoveBudget,
		TargetScore:      req.TargetScore,
		PointsPerPiece:   c.defs.Rules.PointsPerPiece,
		MaxCascadeCycles: c.defs.Rules.MaxCascadeCycles,
		Rand:             candy.NewSource(seed),
		HighScores:       c.scores,
		Notifier:         core.NotifierFunc(c.queueOutcome),
		Logger:           c.logger,
	}
	if opts.GridSize == 0 {
		opts.GridSize = c.defs.Board.Size
	}
	if opts.MoveBudget == 0 {
		opts.MoveBudget = c.defs.Rules.MoveBudget
	}
	if opts.TargetScore == 0 {
		opts.TargetScore = c.defs.Rules.TargetScore
	}

	s, err := candy.NewSession(opts)
	if err != nil {
		return nil, err
	}
	c.session = s
	c.logger.Info("session started", "size", s.Size(), "seed", seed)
	return statePayload(s.State()), nil
}

func (c *client) handleSwap(raw json.RawMessage) (any, error) {
	if c.session == nil {
		return nil, errNoSession
	}
	var req SwapRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	res, err := c.session.AttemptSwap(req.A, req.B)
	if err != nil {
		return nil, err
	}
	return swapPayload(res), nil
}

func (c *client) handleTap(raw json.RawMessage) (any, error) {
	if c.session == nil {
		return nil, errNoSession
	}
	var p candy.Pos
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	res, err := c.session.Tap(p)
	if err != nil {
		return nil, err
	}
	return swapPayload(res), nil
}

func (c *client) handleState() (any, error) {
	if c.session == nil {
		return nil, errNoSession
	}
	return statePayload(c.session.State()), nil
}

func (c *client) queueOutcome(o core.Outcome) {
	c.pending = append(c.pending, o)
}

// flushOutcomes sends outcomes after the response that caused them.
func (c *client) flushOutcomes() {
	for _, o := range c.pending {
		c.logger.Info("session finished", "outcome", o.Kind, "score", o.Score)
		c.send <- WSResponse{Type: TypeNotify, Payload: notifyPayload(o)}
	}
	c.pending = c.pending[:0]
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
