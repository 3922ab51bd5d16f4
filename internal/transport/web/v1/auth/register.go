package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/logx"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/mw"
	v1 "github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/v1"
)

type HandlerRegister struct {
	Log    *log.Logger
	Users  domain.UsersRepo
	Hasher domain.PasswordHasher
}

type registerRequest struct {
	Login string `json:"login"`
	Pswd  string `json:"pswd"`
}

type registerResponse struct {
	Login string `json:"login"`
}

// Register godoc
// @Summary     Register user
// @Description Создаёт пользователя при валидных логине и пароле.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body registerRequest true "login, pswd"
// @Success     200 {object} domain.APIEnvelope{response=registerResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/register [post]
func (h *HandlerRegister) Register(w http.ResponseWriter, r *http.Request) {
	const op = "auth.register"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	if r.Method != http.MethodPost {
		logx.Error(h.Log, reqID, op, "method not allowed", domain.ErrMethodNotAllowed, "method", r.Method)
		v1.WriteDomainError(w, r, domain.ErrMethodNotAllowed)
		return
	}

	var req registerRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logx.Error(h.Log, reqID, op, "bad json", err)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
	} else {
		_ = r.ParseForm()
		req.Login = r.FormValue("login")
		req.Pswd = r.FormValue("pswd")
	}

	if !domain.ValidLogin(req.Login) || !domain.ValidPassword(req.Pswd) {
		logx.Error(h.Log, reqID, op, "invalid login or pswd", domain.ErrBadParams, "login", req.Login)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	hash, err := h.Hasher.Hash(req.Pswd)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	u, err := h.Users.CreateUser(r.Context(), req.Login, []byte(hash))
	if err != nil {
		logx.Error(h.Log, reqID, op, "create user failed", err, "login", req.Login)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID, "login", u.Login)
	v1.WriteOKResponse(w, r, registerResponse{Login: u.Login})
}
