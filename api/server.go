// Package api exposes the HTTP surface: REST endpoints for accounts,
// profiles, service requests, chat history and the technician workflow,
// plus the WebSocket upgrade route.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"tnkr-backend/auth"
	"tnkr-backend/domain"
	"tnkr-backend/errors"
	"tnkr-backend/services"
)

// maxUploadSize bounds multipart request bodies (photos included).
const maxUploadSize = 20 << 20

type Server struct {
	auths       services.IAuthService
	users       services.IUserService
	requests    services.IRequestService
	chat        services.IChatService
	technicians services.ITechnicianService
	gateway     http.HandlerFunc
	log         *slog.Logger
	router      *http.ServeMux
}

func NewServer(auths services.IAuthService, users services.IUserService,
	requests services.IRequestService, chat services.IChatService,
	technicians services.ITechnicianService, gateway http.HandlerFunc,
	log *slog.Logger) *Server {
	s := &Server{
		auths:       auths,
		users:       users,
		requests:    requests,
		chat:        chat,
		technicians: technicians,
		gateway:     gateway,
		log:         log,
		router:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("POST /auth/register", s.handleRegister)
	s.router.HandleFunc("POST /auth/login", s.handleLogin)
	s.router.HandleFunc("GET /auth/verify-email", s.handleVerifyEmail)
	s.router.HandleFunc("POST /auth/resend-verification", s.handleResendVerification)
	s.router.HandleFunc("POST /auth/forgot-password", s.handleForgotPassword)
	s.router.HandleFunc("POST /auth/reset-password", s.handleResetPassword)

	s.router.HandleFunc("GET /users/profile", auth.RequireAuth(s.handleGetProfile))
	s.router.HandleFunc("PUT /users/profile", auth.RequireAuth(s.handleUpdateProfile))

	s.router.HandleFunc("POST /requests", auth.RequireAuth(s.handleCreateRequest))
	s.router.HandleFunc("GET /requests/current", auth.RequireAuth(s.handleCurrentRequests))
	s.router.HandleFunc("GET /requests/completed", auth.RequireAuth(s.handleCompletedRequests))
	s.router.HandleFunc("PUT /requests/{id}/status", auth.RequireAuth(s.handleUpdateRequestStatus))
	s.router.HandleFunc("DELETE /requests/{id}", auth.RequireAuth(s.handleDeleteRequest))

	s.router.HandleFunc("GET /chat/conversations", auth.RequireAuth(s.handleConversations))
	s.router.HandleFunc("GET /chat/messages/{otherUserId}", auth.RequireAuth(s.handleMessages))

	s.router.HandleFunc("GET /technicians/profile",
		auth.RequireRoles(s.handleGetTechnicianProfile, domain.RoleTechnician))
	s.router.HandleFunc("POST /technicians/profile",
		auth.RequireRoles(s.handleUpsertTechnicianProfile, domain.RoleTechnician))
	s.router.HandleFunc("GET /technicians/verification-status",
		auth.RequireRoles(s.handleVerificationStatus, domain.RoleTechnician))
	s.router.HandleFunc("GET /technicians/requests",
		auth.RequireRoles(s.requireVerifiedTechnician(s.handleOpenRequests), domain.RoleTechnician))
	s.router.HandleFunc("PUT /technicians/verify/{technicianId}",
		auth.RequireRoles(s.handleVerifyTechnician, domain.RoleAdmin))
	s.router.HandleFunc("GET /technicians/pending-verifications",
		auth.RequireRoles(s.handlePendingTechnicians, domain.RoleAdmin))

	s.router.HandleFunc("GET /ws", s.gateway)

	s.router.HandleFunc("GET /health", s.handleHealth)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("response encoding failed", "error", err)
	}
}

// respondError maps service errors onto HTTP statuses in one place so every
// handler reports failures the same way.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := errors.MapToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	s.respond(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// requireVerifiedTechnician gates marketplace routes behind the admin review:
// a technician without a profile or with a pending one is refused before the
// handler runs.
func (s *Server) requireVerifiedTechnician(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.technicians.RequireVerified(r.Context(), identity(r).UserID); err != nil {
			s.respondError(w, err)
			return
		}
		next(w, r)
	}
}

func identity(r *http.Request) auth.Identity {
	id, _ := auth.IdentityFromContext(r.Context())
	return id
}
