package balancesheet

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rkap/internal/balancesheet"
	"github.com/MrJamesThe3rd/rkap/internal/http/render"
)

type Handler struct {
	svc *balancesheet.Service
}

func NewHandler(svc *balancesheet.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/", h.delete)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
}

type balanceSheetResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	InitialBalance int64     `json:"initialBalance"`
	Balance        int64     `json:"balance"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toResponse(bs *balancesheet.BalanceSheet) balanceSheetResponse {
	return balanceSheetResponse{
		ID:             bs.ID,
		Name:           bs.Name,
		InitialBalance: bs.InitialBalance,
		Balance:        bs.Balance,
		CreatedAt:      bs.CreatedAt,
	}
}

func toResponseList(sheets []balancesheet.BalanceSheet) []balanceSheetResponse {
	resp := make([]balanceSheetResponse, len(sheets))
	for i := range sheets {
		resp[i] = toResponse(&sheets[i])
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req balancesheet.CreateParams
	if !render.Decode(w, r, &req) {
		return
	}

	bs, err := h.svc.Create(r.Context(), req)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(bs))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(sheets))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.svc.Summary(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(sheets))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	bs, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(bs))
}

type deleteRequest struct {
	IDs []int64 `json:"ids"`
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !render.Decode(w, r, &req) {
		return
	}

	if err := h.svc.Delete(r.Context(), req.IDs); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
