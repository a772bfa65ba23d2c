package api

import (
	"net/http"

	"tnkr-backend/services"
)

type upsertProfileRequest struct {
	ServicesProvided   []string `json:"servicesProvided"`
	BusinessName       string   `json:"businessName"`
	BusinessRegistered bool     `json:"businessRegistered"`
	IncorpNumber       string   `json:"incorpNumber"`
	WebsiteLink        string   `json:"websiteLink"`
	SocialMediaLink    []string `json:"socialMediaLink"`
	Bio                string   `json:"bio"`
	Street             string   `json:"street"`
	City               string   `json:"city"`
	StateCode          string   `json:"stateCode"`
	ZipCode            string   `json:"zipCode"`
}

type verifyTechnicianRequest struct {
	Approved bool `json:"approved"`
}

func (s *Server) handleGetTechnicianProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.technicians.GetProfile(r.Context(), identity(r).UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, profile)
}

func (s *Server) handleUpsertTechnicianProfile(w http.ResponseWriter, r *http.Request) {
	var req upsertProfileRequest
	if !s.decode(w, r, &req) {
		return
	}

	profile, err := s.technicians.UpsertProfile(r.Context(), identity(r).UserID, services.UpsertProfileCommand{
		ServicesProvided:   req.ServicesProvided,
		BusinessName:       req.BusinessName,
		BusinessRegistered: req.BusinessRegistered,
		IncorpNumber:       req.IncorpNumber,
		WebsiteLink:        req.WebsiteLink,
		SocialMediaLink:    req.SocialMediaLink,
		Bio:                req.Bio,
		Street:             req.Street,
		City:               req.City,
		StateCode:          req.StateCode,
		ZipCode:            req.ZipCode,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, profile)
}

func (s *Server) handleVerificationStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.technicians.VerificationStatus(r.Context(), identity(r).UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, status)
}

func (s *Server) handleVerifyTechnician(w http.ResponseWriter, r *http.Request) {
	var req verifyTechnicianRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.technicians.Verify(r.Context(), r.PathValue("technicianId"), req.Approved); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"message": "decision recorded"})
}

func (s *Server) handlePendingTechnicians(w http.ResponseWriter, r *http.Request) {
	pending, err := s.technicians.ListPending(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, pending)
}
