package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rkap/internal/http/render"
	"github.com/MrJamesThe3rd/rkap/internal/importer"
	"github.com/MrJamesThe3rd/rkap/internal/transaction"
	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

type Handler struct {
	svc       *transaction.Service
	importSvc *importer.Service
	maxUpload int64
}

func NewHandler(svc *transaction.Service, importSvc *importer.Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, importSvc: importSvc, maxUpload: maxUpload}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/", h.update)
	r.Delete("/", h.delete)
	r.Post("/import", h.importRows)
	r.Post("/import/csv", h.importFile)
	r.Get("/{id}", h.get)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !render.Decode(w, r, &req) {
		return
	}

	tx, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !render.Decode(w, r, &req) {
		return
	}

	if req.ID <= 0 {
		render.Error(w, r, validation.Field("id", "is required"))
		return
	}

	tx, err := h.svc.Update(r.Context(), req.ID, req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
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

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := transaction.ListFilter{}

	for _, p := range []struct {
		key string
		dst **time.Time
	}{
		{"startDate", &filter.StartDate},
		{"endDate", &filter.EndDate},
	} {
		s := q.Get(p.key)
		if s == "" {
			continue
		}

		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			render.Error(w, r, validation.Field(p.key, "must be a date (YYYY-MM-DD)"))
			return
		}

		*p.dst = new(t)
	}

	for _, p := range []struct {
		key string
		dst **int64
	}{
		{"balanceSheetId", &filter.BalanceSheetID},
		{"categoryId", &filter.CategoryID},
		{"itemId", &filter.ItemID},
	} {
		s := q.Get(p.key)
		if s == "" {
			continue
		}

		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			render.Error(w, r, validation.Field(p.key, "must be a number"))
			return
		}

		*p.dst = new(id)
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) importRows(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var req importRequest

	// Keep numbers as json.Number so amounts are parsed exactly.
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			render.Message(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}

		render.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.runImport(w, r, req.Data)
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		render.Message(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Error(w, r, validation.Field("file", "is required"))
		return
	}
	defer file.Close()

	format, err := importer.FormatOf(r.FormValue("format"), header.Filename)
	if err != nil {
		render.Error(w, r, validation.Field("format", "must be one of: csv xlsx"))
		return
	}

	rows, err := h.importSvc.Parse(format, file)
	if err != nil {
		render.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	h.runImport(w, r, rows)
}

func (h *Handler) runImport(w http.ResponseWriter, r *http.Request, rows []transaction.ImportRow) {
	res, err := h.svc.Import(r.Context(), rows)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toImportResponse(res))
}
