package api

import (
	"io"
	"mime/multipart"
	"net/http"

	"tnkr-backend/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// handleRegister accepts a multipart form: the account fields plus an
// optional "photo" file part.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	cmd := services.RegisterCommand{
		FirstName: r.FormValue("firstName"),
		LastName:  r.FormValue("lastName"),
		Phone:     r.FormValue("phone"),
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		Role:      r.FormValue("role"),
		Password:  r.FormValue("password"),
	}

	photo, ok := s.formUpload(w, r, "photo")
	if !ok {
		return
	}
	cmd.Photo = photo

	user, err := s.auths.Register(r.Context(), cmd)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]any{
		"message": "registration successful, please verify your email",
		"user":    user.View(),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, user, err := s.auths.Login(req.Email, req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user.View(),
	})
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		s.respond(w, http.StatusBadRequest, map[string]string{"error": "missing verification code"})
		return
	}

	if err := s.auths.VerifyEmail(code); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"message": "email verified"})
}

func (s *Server) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.auths.ResendVerification(req.Email); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"message": "verification email sent"})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.auths.ForgotPassword(req.Email); err != nil {
		s.respondError(w, err)
		return
	}
	// Same response whether or not the account exists.
	s.respond(w, http.StatusOK, map[string]string{"message": "if the account exists, a reset email was sent"})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.auths.ResetPassword(req.Code, req.NewPassword); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// formUpload reads one optional file part into memory. A missing part is not
// an error; a part that cannot be read is.
func (s *Server) formUpload(w http.ResponseWriter, r *http.Request, field string) (*services.Upload, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, true
		}
		s.respond(w, http.StatusBadRequest, map[string]string{"error": "unreadable file upload"})
		return nil, false
	}
	defer file.Close()

	upload, err := readUpload(file, header)
	if err != nil {
		s.respond(w, http.StatusBadRequest, map[string]string{"error": "unreadable file upload"})
		return nil, false
	}
	return upload, true
}

func readUpload(file multipart.File, header *multipart.FileHeader) (*services.Upload, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &services.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
