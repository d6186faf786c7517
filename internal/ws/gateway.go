package ws

import (
	"encoding/json"
	"errors"
	"time"

	"vibelink-backend/internal/errs"
	"vibelink-backend/internal/models"
	"vibelink-backend/internal/services"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client→server events.
const (
	EventJoinSession    = "join-session"
	EventStartGame      = "start-game"
	EventSubmitResponse = "submit-response"
	EventSendMessage    = "send-message"
	EventNextRound      = "next-round"
	EventVoteMeme       = "vote-meme"
	EventAudienceVote   = "audience-vote"
	EventGetSession     = "get-session"
)

// Server→client broadcasts.
const (
	EventUserJoined        = "user-joined"
	EventUserLeft          = "user-left"
	EventGameStarted       = "game-started"
	EventResponseSubmitted = "response-submitted"
	EventNewMessage        = "new-message"
	EventRoundChanged      = "round-changed"
	EventGameFinished      = "game-finished"
	EventMemeVoted         = "meme-voted"
	EventAudienceVoteCast  = "audience-vote-recorded"
)

// clientMessage is the client→server envelope. Every message is acked by id.
type clientMessage struct {
	ID    int64           `json:"id"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type ack struct {
	ID      int64       `json:"id"`
	Event   string      `json:"event"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Gateway dispatches real-time events. It never touches storage directly:
// all mutations go through the services, same as the REST surface.
type Gateway struct {
	hub          *Hub
	sessions     *services.SessionService
	interactions *services.InteractionService
	matches      *services.MatchService
	users        *services.UserService
	log          *zap.Logger
}

func NewGateway(
	hub *Hub,
	sessions *services.SessionService,
	interactions *services.InteractionService,
	matches *services.MatchService,
	users *services.UserService,
	log *zap.Logger,
) *Gateway {
	return &Gateway{
		hub:          hub,
		sessions:     sessions,
		interactions: interactions,
		matches:      matches,
		users:        users,
		log:          log,
	}
}

// Serve runs the connection until it closes. The caller has already
// authenticated userID and upgraded the connection.
func (g *Gateway) Serve(conn *websocket.Conn, userID uint) {
	client := &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Send:   make(chan []byte, 64),
	}
	if user, err := g.users.Get(userID); err == nil {
		client.Username = user.Username
	}

	go g.writePump(conn, client)
	g.readPump(conn, client)

	g.disconnect(client)
	close(client.Send)
}

func (g *Gateway) readPump(conn *websocket.Conn, client *Client) {
	defer conn.Close()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Debug("read error", zap.String("connection_id", client.ID), zap.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			g.send(client, ack{Event: "ack", Success: false, Error: "malformed message"})
			continue
		}

		data, err := g.dispatch(client, msg)
		response := ack{ID: msg.ID, Event: "ack", Success: err == nil, Data: data}
		if err != nil {
			response.Error = err.Error()
		}
		g.send(client, response)
	}
}

func (g *Gateway) writePump(conn *websocket.Conn, client *Client) {
	defer conn.Close()
	for data := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (g *Gateway) send(client *Client, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		g.log.Error("ack marshal failed", zap.Error(err))
		return
	}
	select {
	case client.Send <- data:
	default:
		g.log.Warn("send buffer full, dropping ack", zap.String("connection_id", client.ID))
	}
}

func (g *Gateway) dispatch(client *Client, msg clientMessage) (interface{}, error) {
	if msg.Event == EventJoinSession {
		return g.handleJoin(client, msg.Data)
	}
	if client.SessionID == 0 {
		return nil, errors.New("join a session first")
	}

	switch msg.Event {
	case EventStartGame:
		return g.handleStartGame(client)
	case EventSubmitResponse:
		return g.handleSubmitResponse(client, msg.Data)
	case EventSendMessage:
		return g.handleSendMessage(client, msg.Data)
	case EventNextRound:
		return g.handleNextRound(client)
	case EventVoteMeme:
		return g.handleVoteMeme(client, msg.Data)
	case EventAudienceVote:
		return g.handleAudienceVote(client, msg.Data)
	case EventGetSession:
		return g.handleGetSession(client)
	default:
		return nil, errors.New("unknown event: " + msg.Event)
	}
}

func (g *Gateway) handleJoin(client *Client, data json.RawMessage) (interface{}, error) {
	var req struct {
		SessionID uint `json:"session_id"`
	}
	if err := json.Unmarshal(data, &req); err != nil || req.SessionID == 0 {
		return nil, errs.ErrValidation
	}

	session, err := g.sessions.IsParticipant(req.SessionID, client.UserID)
	if err != nil {
		return nil, err
	}

	if client.SessionID != 0 && client.SessionID != req.SessionID {
		g.disconnect(client)
	}

	g.hub.Join(req.SessionID, client)
	g.hub.BroadcastExcept(req.SessionID, client, Event{
		Event: EventUserJoined,
		Data: map[string]interface{}{
			"session_id": req.SessionID,
			"user_id":    client.UserID,
			"username":   client.Username,
		},
	})
	if err := g.interactions.RecordConnectionEvent(req.SessionID, client.UserID, client.ID, models.ConnectionEventJoined); err != nil {
		g.log.Warn("record connection event failed", zap.Error(err))
	}

	return map[string]interface{}{"session": session}, nil
}

func (g *Gateway) handleStartGame(client *Client) (interface{}, error) {
	session, err := g.sessions.Get(client.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusWaiting {
		return nil, errors.New("game already started")
	}

	session, err = g.sessions.AdvanceRound(client.SessionID)
	if err != nil {
		return nil, err
	}

	g.hub.Broadcast(client.SessionID, Event{
		Event: EventGameStarted,
		Data: map[string]interface{}{
			"session":    session,
			"started_at": time.Now().UTC(),
		},
	})
	return map[string]interface{}{"session": session}, nil
}

func (g *Gateway) handleSubmitResponse(client *Client, data json.RawMessage) (interface{}, error) {
	var input services.SubmitResponseInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, errs.ErrValidation
	}

	response, err := g.interactions.SubmitResponse(client.SessionID, client.UserID, input)
	if err != nil {
		return nil, err
	}

	// Only the fact of submission is broadcast. Content stays private until
	// a reveal phase so other participants can't peek at answers.
	g.hub.Broadcast(client.SessionID, Event{
		Event: EventResponseSubmitted,
		Data: map[string]interface{}{
			"user_id":      client.UserID,
			"round_number": response.RoundNumber,
		},
	})
	return map[string]interface{}{"response": response}, nil
}

func (g *Gateway) handleSendMessage(client *Client, data json.RawMessage) (interface{}, error) {
	var req struct {
		Message   string `json:"message"`
		RoundType string `json:"round_type"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errs.ErrValidation
	}

	message, err := g.interactions.PostMessage(client.SessionID, client.UserID, req.Message, req.RoundType)
	if err != nil {
		return nil, err
	}

	g.hub.Broadcast(client.SessionID, Event{
		Event: EventNewMessage,
		Data: map[string]interface{}{
			"id":         message.ID,
			"user_id":    client.UserID,
			"username":   client.Username,
			"message":    message.Message,
			"round_type": message.RoundType,
			"created_at": message.CreatedAt,
		},
	})
	return map[string]interface{}{"message": message}, nil
}

func (g *Gateway) handleNextRound(client *Client) (interface{}, error) {
	session, err := g.sessions.AdvanceRound(client.SessionID)
	if err != nil {
		if errors.Is(err, errs.ErrRoundConflict) {
			// Someone else advanced first; report the state they produced.
			return map[string]interface{}{"session": session}, err
		}
		return nil, err
	}

	if session.Status == models.SessionStatusFinished {
		g.hub.Broadcast(client.SessionID, Event{
			Event: EventGameFinished,
			Data: map[string]interface{}{
				"session_id": session.ID,
				"ended_at":   session.EndedAt,
			},
		})
	} else {
		g.hub.Broadcast(client.SessionID, Event{
			Event: EventRoundChanged,
			Data: map[string]interface{}{
				"session_id":    session.ID,
				"current_round": session.CurrentRound,
				"game_state":    session.GameState,
			},
		})
	}
	return map[string]interface{}{"session": session}, nil
}

func (g *Gateway) handleVoteMeme(client *Client, data json.RawMessage) (interface{}, error) {
	var req struct {
		MemeID uint `json:"meme_id"`
		Vote   int  `json:"vote"`
	}
	if err := json.Unmarshal(data, &req); err != nil || req.MemeID == 0 {
		return nil, errs.ErrValidation
	}

	meme, err := g.interactions.VoteMeme(req.MemeID, client.UserID, req.Vote)
	if err != nil {
		return nil, err
	}

	g.hub.Broadcast(client.SessionID, Event{
		Event: EventMemeVoted,
		Data: map[string]interface{}{
			"meme_id":    meme.ID,
			"voter_id":   client.UserID,
			"vote_count": meme.VoteCount,
		},
	})
	return map[string]interface{}{"meme": meme}, nil
}

func (g *Gateway) handleAudienceVote(client *Client, data json.RawMessage) (interface{}, error) {
	var req struct {
		Category  string `json:"category"`
		NomineeID uint   `json:"nominee_id"`
		Weight    int    `json:"weight"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errs.ErrValidation
	}

	vote, err := g.interactions.CastAudienceVote(client.SessionID, client.UserID, req.Category, req.NomineeID, req.Weight)
	if err != nil {
		return nil, err
	}

	g.hub.Broadcast(client.SessionID, Event{
		Event: EventAudienceVoteCast,
		Data: map[string]interface{}{
			"category":   vote.Category,
			"nominee_id": vote.NomineeID,
			"voter_id":   client.UserID,
			"weight":     vote.Weight,
		},
	})
	return map[string]interface{}{"vote": vote}, nil
}

func (g *Gateway) handleGetSession(client *Client) (interface{}, error) {
	session, err := g.sessions.Get(client.SessionID)
	if err != nil {
		return nil, err
	}
	matches, err := g.matches.ListMatches(client.SessionID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"session": session,
		"matches": matches,
	}, nil
}

// disconnect removes the client from its group and tells the remaining
// members. Disconnect is unilateral; there is no leave acknowledgment.
func (g *Gateway) disconnect(client *Client) {
	sessionID, ok := g.hub.Leave(client)
	if !ok {
		return
	}
	g.hub.Broadcast(sessionID, Event{
		Event: EventUserLeft,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    client.UserID,
			"username":   client.Username,
		},
	})
	if err := g.interactions.RecordConnectionEvent(sessionID, client.UserID, client.ID, models.ConnectionEventLeft); err != nil {
		g.log.Warn("record connection event failed", zap.Error(err))
	}
}
