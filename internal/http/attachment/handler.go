package attachment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rkap/internal/attachment"
	"github.com/MrJamesThe3rd/rkap/internal/http/render"
	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

type Handler struct {
	store     *attachment.Store
	maxUpload int64
}

func NewHandler(store *attachment.Store, maxUpload int64) *Handler {
	return &Handler{store: store, maxUpload: maxUpload}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
	r.Get("/{name}", h.download)
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
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

	url, err := h.store.Save(r.Context(), file, header.Filename)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, uploadResponse{URL: url})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	f, err := h.store.Open(name)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		render.Error(w, r, err)
		return
	}

	http.ServeContent(w, r, name, info.ModTime(), f)
}
