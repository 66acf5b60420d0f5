// ABOUTME: HTTP API handlers for accounts, conversations, and messages
// ABOUTME: Maps engine errors onto 400/404 responses and JSON bodies

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/XxELIngexX/Econexion-back/internal/auth"
	"github.com/XxELIngexX/Econexion-back/internal/chat"
	"github.com/XxELIngexX/Econexion-back/internal/store"
)

// RegisterRequest is the JSON request body for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the JSON request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the JSON response for register and login.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

// CreateConversationRequest is the JSON request body for POST /api/chat/conversations.
// The sender is the authenticated caller; a non-blank first_message is sent
// through the engine right after the conversation is resolved.
type CreateConversationRequest struct {
	OfferID      int64  `json:"offer_id"`
	ReceiverID   int64  `json:"receiver_id"`
	FirstMessage string `json:"first_message,omitempty"`
}

// CreateConversationResponse is the JSON response for POST /api/chat/conversations.
type CreateConversationResponse struct {
	ConversationID int64 `json:"conversation_id"`
}

// ConversationSummaryResponse is one entry of GET /api/chat/conversations.
type ConversationSummaryResponse struct {
	ConversationID int64  `json:"conversation_id"`
	OfferID        int64  `json:"offer_id"`
	Participant1ID int64  `json:"participant1_id"`
	Participant2ID int64  `json:"participant2_id"`
	UpdatedAt      string `json:"updated_at"`
	Preview        string `json:"preview"`
}

// SendMessageRequest is the JSON request body for POST /api/chat/conversations/{id}/messages.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// MessageResponse is the JSON shape of a single message.
type MessageResponse struct {
	ID        int64  `json:"id"`
	SenderID  int64  `json:"sender_id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// handleRegister handles POST /api/auth/register requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		s.sendJSONError(w, http.StatusBadRequest, "email, username and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &store.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			s.sendJSONError(w, http.StatusConflict, "email already registered")
			return
		}
		s.logger.Error("failed to create user", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondWithToken(w, user.ID)
}

// handleLogin handles POST /api/auth/login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.users.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		s.sendJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		s.logger.Error("failed to load user", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.sendJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.respondWithToken(w, user.ID)
}

// respondWithToken issues a JWT for the user and writes the auth response
func (s *Server) respondWithToken(w http.ResponseWriter, userID int64) {
	token, err := s.tokens.Generate(userID, s.cfg.Auth.TokenTTL)
	if err != nil {
		s.logger.Error("failed to generate token", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, AuthResponse{Token: token, UserID: userID})
}

// handleConversations handles /api/chat/conversations requests:
// GET lists the caller's conversations, POST creates or reuses one.
func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		s.sendJSONError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.listConversations(w, r, userID)
	case http.MethodPost:
		s.createConversation(w, r, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listConversations(w http.ResponseWriter, r *http.Request, userID int64) {
	summaries, err := s.chat.ListConversations(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to list conversations", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := make([]ConversationSummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		response = append(response, ConversationSummaryResponse{
			ConversationID: sum.ConversationID,
			OfferID:        sum.OfferID,
			Participant1ID: sum.Participant1ID,
			Participant2ID: sum.Participant2ID,
			UpdatedAt:      sum.UpdatedAt.UTC().Format(time.RFC3339),
			Preview:        sum.Preview,
		})
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) createConversation(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.OfferID == 0 || req.ReceiverID == 0 {
		s.sendJSONError(w, http.StatusBadRequest, "offer_id and receiver_id are required")
		return
	}

	conv, err := s.chat.GetOrCreateConversation(r.Context(), req.OfferID, userID, req.ReceiverID)
	if err != nil {
		s.logger.Error("failed to get or create conversation", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if strings.TrimSpace(req.FirstMessage) != "" {
		if _, err := s.chat.SendMessage(r.Context(), conv.ID, userID, req.FirstMessage); err != nil {
			s.sendChatError(w, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, CreateConversationResponse{ConversationID: conv.ID})
}

// handleConversationRoutes handles /api/chat/conversations/{id}/messages:
// GET lists the conversation's messages, POST sends one.
func (s *Server) handleConversationRoutes(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		s.sendJSONError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/chat/conversations/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "messages" {
		s.sendJSONError(w, http.StatusNotFound, "not found")
		return
	}

	conversationID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.listMessages(w, r, conversationID)
	case http.MethodPost:
		s.sendMessage(w, r, conversationID, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request, conversationID int64) {
	msgs, err := s.chat.ListMessages(r.Context(), conversationID)
	if err != nil {
		s.logger.Error("failed to list messages", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := make([]MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		response = append(response, messageResponse(msg))
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request, conversationID, userID int64) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	msg, err := s.chat.SendMessage(r.Context(), conversationID, userID, req.Text)
	if err != nil {
		s.sendChatError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponse(msg))
}

func messageResponse(msg *store.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		SenderID:  msg.SenderID,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// sendChatError maps engine errors onto HTTP statuses: unknown conversation is
// 404, invalid requests (non-participant sender, blank or oversized text) are
// 400, everything else is an opaque 500.
func (s *Server) sendChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chat.ErrConversationNotFound):
		s.sendJSONError(w, http.StatusNotFound, "conversation not found")
	case errors.Is(err, chat.ErrNotParticipant):
		s.sendJSONError(w, http.StatusBadRequest, "sender not in conversation")
	case errors.Is(err, chat.ErrEmptyMessage):
		s.sendJSONError(w, http.StatusBadRequest, "message text is empty")
	case errors.Is(err, chat.ErrMessageTooLong):
		s.sendJSONError(w, http.StatusBadRequest, "message text too long")
	default:
		s.logger.Error("chat operation failed", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
