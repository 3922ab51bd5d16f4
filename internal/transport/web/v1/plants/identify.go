package plants

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/history"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/logx"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/mw"
	v1 "github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/v1"
)

// Identify godoc
// @Summary     Identify plant by photo
// @Description multipart: image (file). Результат кешируется по хэшу фото.
// @Tags        plants
// @Accept      multipart/form-data
// @Produce     json
// @Param       image formData file true "plant photo"
// @Success     200 {object} domain.APIEnvelope{response=domain.PlantIdentification}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/plants/identify [post]
func (h *Handler) Identify(w http.ResponseWriter, r *http.Request) {
	const op = "plants.identify"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	if r.Method != http.MethodPost {
		logx.Error(h.Log, reqID, op, "method not allowed", domain.ErrMethodNotAllowed, "method", r.Method)
		v1.WriteDomainError(w, r, domain.ErrMethodNotAllowed)
		return
	}
	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	fh, hdr, err := r.FormFile("image")
	if err != nil {
		logx.Error(h.Log, reqID, op, "missing image", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer fh.Close()

	img, err := io.ReadAll(fh)
	if err != nil {
		logx.Error(h.Log, reqID, op, "read image", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	mime := hdr.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}

	// фото в сторидж; ключ и хэш детерминированы по контенту
	put, err := h.Storage.PutImage(r.Context(), img, mime)
	if err != nil {
		logx.Error(h.Log, reqID, op, "storage put", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	// кеш по (пользователь, хэш фото): повторная загрузка того же
	// снимка не ходит во внешний API
	ckey := domain.CacheKeyPlantID(me.ID, put.ImageHash)
	if b, hit := h.Cache.Get(r.Context(), ckey); hit {
		var cached domain.PlantIdentification
		if uerr := json.Unmarshal(b, &cached); uerr != nil {
			logx.Error(h.Log, reqID, op, "corrupt cached result", uerr, "key", ckey)
		} else {
			h.record(r, me, cached)
			logx.Info(h.Log, reqID, op, "cache hit", "user_id", me.ID, "image_hash", put.ImageHash)
			v1.WriteOKResponse(w, r, cached)
			return
		}
	}

	res, err := h.Analyzer.Identify(r.Context(), img)
	if err != nil {
		logx.Error(h.Log, reqID, op, "analyze failed", err, "image_hash", put.ImageHash)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	res.ID = uuid.New()
	res.UserID = me.ID
	res.ImageHash = put.ImageHash
	res.StorageKey = put.StorageKey

	if b, err := json.Marshal(res); err == nil {
		h.Cache.Set(r.Context(), ckey, b, h.ResultTTL)
	}
	h.record(r, me, res)

	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID, "name", res.ScientificName)
	v1.WriteOKResponse(w, r, res)
}

// record пишет распознавание в историю пользователя и общую ленту
func (h *Handler) record(r *http.Request, me domain.User, res domain.PlantIdentification) {
	e := history.Entry{
		Type:          entryTypePlantID,
		RefID:         res.ID.String(),
		ResultSummary: res.Summary,
	}
	h.History.AppendUser(r.Context(), me.ID.String(), e)
	h.History.AppendRecent(r.Context(), e)
}
