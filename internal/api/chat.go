package api

import (
	"encoding/json"
	"net/http"

	"github.com/medstock/medstock/internal/chat"
	"github.com/medstock/medstock/internal/observability"
)

type assistantChatRequest struct {
	Message  string      `json:"message"`
	Messages []chat.Turn `json:"messages"`
}

type assistantChatResponse struct {
	Message string `json:"message"`
}

// handleAssistantChat drives one message through the assistant pipeline. The
// response body always carries a single "message" field; failures are
// reported inside it with an "Error: " prefix so the admin UI can render
// them inline in the conversation.
func handleAssistantChat(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Assistant == nil {
		observability.ObserveChatRequest("error")
		writeJSON(w, http.StatusInternalServerError, assistantChatResponse{Message: "Error: assistant is not configured"})
		return
	}

	var req assistantChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.ObserveChatRequest("error")
		writeJSON(w, http.StatusBadRequest, assistantChatResponse{Message: "Error: invalid request body"})
		return
	}

	answer, err := deps.Assistant.Respond(r.Context(), req.Message, req.Messages)
	if err != nil {
		status := http.StatusInternalServerError
		if kind, ok := chat.KindOf(err); ok && kind == chat.KindMissingInput {
			status = http.StatusBadRequest
		}
		if deps.Logger != nil {
			deps.Logger.Error("assistant chat failed", "error", err)
		}
		observability.ObserveChatRequest("error")
		writeJSON(w, status, assistantChatResponse{Message: "Error: " + err.Error()})
		return
	}

	observability.ObserveChatRequest("ok")
	writeJSON(w, http.StatusOK, assistantChatResponse{Message: answer})
}
