package server

import (
	"net/http"

	"goaltrack/internal/logging"
)

const conceptBotPrompt = `You are a learning assistant helping users understand concepts and achieve their learning goals.
Your role is to:
- Answer questions about learning concepts
- Provide study tips and strategies
- Help break down complex topics
- Suggest resources for further learning
Do NOT generate schedules - that's handled by a different system.`

const chatUnavailableReply = "I'm sorry, but I'm having trouble connecting to the AI service right now. " +
	"Please try again later, or consider checking documentation or online tutorials for help with your question."

type chatRequest struct {
	Message string `json:"message"`
}

// POST /api/chat is a free-form Q&A passthrough to the generation
// service. Failures degrade to a fixed apology rather than an error
// status so the conversation UI stays usable.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeErr(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := s.client.CompleteWithSystem(r.Context(), conceptBotPrompt,
		req.Message+"\n\nProvide a clear, helpful response that focuses on understanding and learning.")
	if err != nil {
		logging.APIError("chat completion failed: %v", err)
		reply = chatUnavailableReply
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}
