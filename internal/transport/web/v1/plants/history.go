package plants

import (
	"net/http"
	"strconv"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/history"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/logx"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/mw"
	v1 "github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/v1"
)

type historyResponse struct {
	Entries []history.Entry `json:"entries"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	Total   int64           `json:"total"`
}

// History godoc
// @Summary     User identification history
// @Description Страница истории пользователя, самые свежие записи первыми.
// @Tags        plants
// @Produce     json
// @Param       page  query int false "page (1-based)"
// @Param       limit query int false "page size"
// @Success     200 {object} domain.APIEnvelope{response=historyResponse}
// @Failure     401 {object} domain.APIEnvelope
// @Router      /api/plants/history [get]
func (h *Handler) UserHistory(w http.ResponseWriter, r *http.Request) {
	const op = "plants.history"
	reqID := mw.RequestIDFromCtx(r.Context())

	if r.Method != http.MethodGet {
		v1.WriteDomainError(w, r, domain.ErrMethodNotAllowed)
		return
	}
	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	page, limit := pageParams(r)
	entries := h.History.UserPage(r.Context(), me.ID.String(), page, limit)
	total := h.History.UserSize(r.Context(), me.ID.String())

	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID, "page", page, "n", len(entries))
	v1.WriteOKResponse(w, r, historyResponse{Entries: entries, Page: page, Limit: limit, Total: total})
}

// Recent godoc
// @Summary     Recent identifications (site-wide)
// @Tags        plants
// @Produce     json
// @Param       page  query int false "page (1-based)"
// @Param       limit query int false "page size"
// @Success     200 {object} domain.APIEnvelope{response=historyResponse}
// @Router      /api/plants/recent [get]
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	const op = "plants.recent"
	reqID := mw.RequestIDFromCtx(r.Context())

	if r.Method != http.MethodGet {
		v1.WriteDomainError(w, r, domain.ErrMethodNotAllowed)
		return
	}

	page, limit := pageParams(r)
	entries := h.History.RecentPage(r.Context(), page, limit)
	total := h.History.RecentSize(r.Context())

	logx.Info(h.Log, reqID, op, "ok", "page", page, "n", len(entries))
	v1.WriteOKResponse(w, r, historyResponse{Entries: entries, Page: page, Limit: limit, Total: total})
}

func pageParams(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if s := r.URL.Query().Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			page = n
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return page, limit
}
