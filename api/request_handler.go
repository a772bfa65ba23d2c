package api

import (
	"net/http"
	"strconv"

	"tnkr-backend/domain"
	"tnkr-backend/services"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

// handleCreateRequest accepts a multipart form: the request fields plus any
// number of "photos" file parts.
func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	cmd := services.CreateRequestCommand{
		JobDescription:       r.FormValue("jobDescription"),
		Budget:               formInt(r, "budget"),
		ShoeSize:             formFloat(r, "shoeSize"),
		Brand:                r.FormValue("brand"),
		ShoeName:             r.FormValue("shoeName"),
		ReleaseYear:          formInt(r, "releaseYear"),
		PreviouslyWorkedWith: r.FormValue("previouslyWorkedWith"),
		Service:              r.FormValue("service"),
		Subtypes:             r.MultipartForm.Value["subtypes"],
		Street:               r.FormValue("street"),
		City:                 r.FormValue("city"),
		StateCode:            r.FormValue("stateCode"),
		ZipCode:              r.FormValue("zipCode"),
		RecommendedPrice:     formInt(r, "recommendedPrice"),
	}

	for _, header := range r.MultipartForm.File["photos"] {
		file, err := header.Open()
		if err != nil {
			s.respond(w, http.StatusBadRequest, map[string]string{"error": "unreadable file upload"})
			return
		}
		upload, err := readUpload(file, header)
		file.Close()
		if err != nil {
			s.respond(w, http.StatusBadRequest, map[string]string{"error": "unreadable file upload"})
			return
		}
		cmd.Photos = append(cmd.Photos, *upload)
	}

	request, err := s.requests.CreateRequest(r.Context(), identity(r).UserID, cmd)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, request)
}

func (s *Server) handleCurrentRequests(w http.ResponseWriter, r *http.Request) {
	s.listRequests(w, r, domain.RequestStatusOpen)
}

func (s *Server) handleCompletedRequests(w http.ResponseWriter, r *http.Request) {
	s.listRequests(w, r, domain.RequestStatusCompleted)
}

func (s *Server) listRequests(w http.ResponseWriter, r *http.Request, status string) {
	requests, err := s.requests.ListRequests(r.Context(), identity(r).UserID, status)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, requests)
}

// handleOpenRequests is the marketplace feed for verified technicians.
func (s *Server) handleOpenRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.requests.ListOpenRequests(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, requests)
}

func (s *Server) handleUpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !s.decode(w, r, &req) {
		return
	}

	request, err := s.requests.UpdateStatus(r.Context(), identity(r).UserID, r.PathValue("id"), req.Status)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, request)
}

func (s *Server) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := s.requests.DeleteRequest(r.Context(), identity(r).UserID, r.PathValue("id")); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"message": "request deleted"})
}

func formInt(r *http.Request, field string) int {
	n, _ := strconv.Atoi(r.FormValue(field))
	return n
}

func formFloat(r *http.Request, field string) float64 {
	f, _ := strconv.ParseFloat(r.FormValue(field), 64)
	return f
}
