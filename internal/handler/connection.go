package handler

import (
	"net/http"

	"github.com/zhihungchen/FittedIn/internal/ctxkeys"
	"github.com/zhihungchen/FittedIn/internal/service"
)

type ConnectionHandler struct {
	connectionService *service.ConnectionService
}

func NewConnectionHandler(connectionService *service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{
		connectionService: connectionService,
	}
}

type sendRequestRequest struct {
	ReceiverID string `json:"receiver_id"`
}

func (h *ConnectionHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req sendRequestRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	conn, err := h.connectionService.SendRequest(user.ID, req.ReceiverID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, map[string]any{
		"connection": conn.View(),
	})
}

func (h *ConnectionHandler) Accept(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	conn, err := h.connectionService.Accept(r.PathValue("id"), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"connection": conn.View(),
	})
}

func (h *ConnectionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	conn, err := h.connectionService.Reject(r.PathValue("id"), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"connection": conn.View(),
	})
}

func (h *ConnectionHandler) Block(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	conn, err := h.connectionService.Block(r.PathValue("id"), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"connection": conn.View(),
	})
}

func (h *ConnectionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.connectionService.Remove(r.PathValue("id"), user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"message": "connection removed",
	})
}

func (h *ConnectionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	connections, err := h.connectionService.Connections(user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"connections": connections,
	})
}

func (h *ConnectionHandler) Pending(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	requests, err := h.connectionService.Pending(user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"requests": requests,
	})
}
