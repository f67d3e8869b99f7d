package handler

import (
	"net/http"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/service"
)

// Register handles POST /auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var body RegisterRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	u, err := s.auth.Register(r.Context(), service.RegisterInput{
		Username:  body.Username,
		Email:     body.Email,
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
	if err != nil {
		s.fail(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusCreated, userToResponse(u))
}

// Login handles POST /auth/login. A wrong password and an unknown login
// produce the same 401.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	sess, err := s.auth.Login(r.Context(), body.Login, body.Password)
	if err != nil {
		s.fail(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, Session{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      userToResponse(sess.User),
	})
}

// Logout handles POST /auth/logout by revoking the presented token.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), caller(r)); err != nil {
		s.fail(w, r, err, "session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMe handles GET /me.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.auth.Profile(r.Context(), caller(r).UserID)
	if err != nil {
		s.fail(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(u))
}

// UpdateMe handles PUT /me.
func (s *Server) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var body ProfileRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	u, err := s.auth.UpdateProfile(r.Context(), domain.User{
		ID:        caller(r).UserID,
		Email:     body.Email,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
	if err != nil {
		s.fail(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(u))
}
