package api

import (
	"net/http"

	"tnkr-backend/services"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.users.GetProfile(r.Context(), identity(r).UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, profile)
}

// handleUpdateProfile accepts a multipart form so the profile photo can be
// replaced in the same call as the text fields.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	cmd := services.UpdateProfileCommand{
		FirstName: r.FormValue("firstName"),
		LastName:  r.FormValue("lastName"),
		Phone:     r.FormValue("phone"),
	}

	photo, ok := s.formUpload(w, r, "photo")
	if !ok {
		return
	}
	cmd.Photo = photo

	profile, err := s.users.UpdateProfile(r.Context(), identity(r).UserID, cmd)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, profile)
}
