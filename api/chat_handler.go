package api

import "net/http"

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := s.chat.GetConversations(r.Context(), identity(r).UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, conversations)
}

// handleMessages returns the full history between the caller and one other
// user, oldest first.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.chat.GetMessagesBetween(r.Context(), identity(r).UserID, r.PathValue("otherUserId"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, messages)
}
