package fakeapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/auth"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/go-chi/chi/v5"
)

const (
	minPasswordLength = 8
	resetTokenTTL     = 15 * time.Minute
	maxBodyBytes      = 1 << 20
	forgotReply       = "If the account exists, a reset link was sent to your email."
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeStoreError maps a Store error to its status.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type newPassword struct {
	NewPassword string `json:"newPassword"`
}

// POST /api/auth/Login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if !decodeBody(w, r, &c) {
		return
	}
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	mustChange, err := s.store.Authenticate(c.Email, c.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	token, err := auth.GenerateToken(normalizeEmail(c.Email), s.jwtSecret, s.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "mustChangePassword": mustChange})
}

// POST /api/auth/change-password-movill
func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var body newPassword
	if !decodeBody(w, r, &body) {
		return
	}
	s.setPassword(w, subjectFrom(r.Context()), body.NewPassword, "password changed")
}

func (s *Server) setPassword(w http.ResponseWriter, email, password, reply string) {
	if len(password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password is too short")
		return
	}
	if err := s.store.SetPassword(email, password); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": reply})
}

// POST /api/auth/forgot-password-movil answers in plain text and never
// reveals whether the account exists.
func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if s.store.HasUser(body.Email) {
		token, err := auth.GenerateToken(resetPrefix+normalizeEmail(body.Email), s.jwtSecret, resetTokenTTL)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "token error")
			return
		}
		s.store.SetResetToken(body.Email, token)
		s.logger.Info(r.Context(), "password reset requested", "email", body.Email)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(forgotReply))
}

// POST /api/auth/reset-password authenticates with a reset token.
func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	token, ok := common.BearerToken(r.Header.Get(common.AuthorizationHeader))
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}
	subject, err := auth.SubjectFromToken(token, s.jwtSecret)
	email, isReset := strings.CutPrefix(subject, resetPrefix)
	if err != nil || !isReset {
		writeError(w, http.StatusUnauthorized, "invalid reset token")
		return
	}

	var body newPassword
	if !decodeBody(w, r, &body) {
		return
	}
	s.setPassword(w, email, body.NewPassword, "password updated")
}

// POST /api/auth/register
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var reg Registration
	if !decodeBody(w, r, &reg) {
		return
	}
	if len(reg.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password is too short")
		return
	}
	if err := s.store.Register(reg); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "registered"})
}

// GET /marcas/getAll
func (s *Server) brands(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.brandList())
}

// GET /vehiculo/obtener
func (s *Server) vehicles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.vehicleList(""))
}

// GET /vehiculo/marca/{marca}
func (s *Server) vehiclesByBrand(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.vehicleList(chi.URLParam(r, "marca")))
}

// PUT /vehiculo/actualizar/{id} replaces the vehicle document.
func (s *Server) updateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var v vehicle
	if !decodeBody(w, r, &v) {
		return
	}
	if err := s.store.replaceVehicle(id, v); err != nil {
		writeStoreError(w, err)
		return
	}
	stored, _ := s.store.vehicleByID(id)
	writeJSON(w, http.StatusOK, stored)
}

// GET /servicios/obtener
func (s *Server) services(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.serviceList())
}

// GET /cliente/email/{email} answers an unknown email with an empty body,
// as the real backend does.
func (s *Server) customerByEmail(w http.ResponseWriter, r *http.Request) {
	c, ok := s.store.customerByEmail(chi.URLParam(r, "email"))
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// POST /ventas/vender
func (s *Server) recordSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	key := r.Header.Get(common.IdempotencyKeyHeader)

	out, created, err := s.store.recordSale(key, req, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	writeJSON(w, status, out)
}

// GET /ventas/porCliente/{id}
func (s *Server) salesByCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.salesByCustomer(id))
}
