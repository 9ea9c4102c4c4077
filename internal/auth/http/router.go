package http

import (
	"net/http"
	"strings"
	"time"

	authservice "github.com/recipevault/backend/internal/auth/service"
	commonhttp "github.com/recipevault/backend/internal/common/http"
	"github.com/recipevault/backend/internal/common/logger"
	userservice "github.com/recipevault/backend/internal/user/service"
)

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	users   *userservice.UserService
	auth    *authservice.AuthService
	errors  *commonhttp.ErrorHandler
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(
	users *userservice.UserService,
	auth *authservice.AuthService,
	timeout time.Duration,
	log *logger.Logger,
) http.Handler {
	h := &Handler{
		users:   users,
		auth:    auth,
		errors:  commonhttp.NewErrorHandler(log),
		log:     log,
		timeout: timeout,
	}

	post := commonhttp.RequireMethod(http.MethodPost)
	withTimeout := commonhttp.WithTimeout(timeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.HandleFunc("/user/create/", exactPath("/user/create/", post(withTimeout(h.createUser))))
	mux.HandleFunc("/user/token/", exactPath("/user/token/", post(withTimeout(h.obtainToken))))
	mux.HandleFunc("/user/me/", exactPath("/user/me/", withTimeout(h.me)))
	return mux
}

// exactPath keeps the trailing-slash routes from matching as subtrees.
func exactPath(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			commonhttp.WriteError(w, http.StatusNotFound, "not found")
			return
		}
		next(w, r)
	}
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create user failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	profile, err := h.users.Create(r.Context(), userservice.CreateInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, profile)
}

func (h *Handler) obtainToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("obtain token failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	user, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	token, err := h.auth.IssueToken(r.Context(), user)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPatch, http.MethodPut:
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		return
	}

	rawToken, ok := bearerToken(r)
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, "")
		return
	}

	user, err := h.auth.ResolveToken(r.Context(), rawToken)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	if r.Method == http.MethodGet {
		commonhttp.WriteJSON(w, http.StatusOK, userservice.Profile{Email: user.Email, Name: user.Name})
		return
	}

	var req updateUserRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update user failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	// The target is always the user the token resolved to; the payload
	// cannot name another identity.
	profile, err := h.users.Update(r.Context(), user, userservice.UpdateInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, profile)
}

func bearerToken(r *http.Request) (string, bool) {
	raw := r.Header.Get("Authorization")
	if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
		return "", false
	}

	token := strings.TrimPrefix(raw, "Bearer ")
	if token == "" {
		return "", false
	}

	return token, true
}
