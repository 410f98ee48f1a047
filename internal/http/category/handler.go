package category

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rkap/internal/category"
	"github.com/MrJamesThe3rd/rkap/internal/http/render"
	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CategoryRoutes(r chi.Router) {
	r.Get("/", h.listCategories)
	r.Post("/", h.createCategory)
	r.Get("/{id}", h.getCategory)
	r.Patch("/{id}", h.updateCategory)
	r.Delete("/{id}", h.deleteCategory)
}

func (h *Handler) ItemRoutes(r chi.Router) {
	r.Get("/", h.listItems)
	r.Post("/", h.createItem)
	r.Get("/{id}", h.getItem)
	r.Patch("/{id}", h.updateItem)
	r.Delete("/{id}", h.deleteItem)
}

type categoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Budget    int64     `json:"budget"`
	CreatedAt time.Time `json:"createdAt"`
}

type itemResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	CategoryID   int64     `json:"categoryId"`
	CategoryName string    `json:"categoryName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toCategoryResponse(c *category.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Budget: c.Budget, CreatedAt: c.CreatedAt}
}

func toItemResponse(it *category.Item) itemResponse {
	return itemResponse{
		ID:           it.ID,
		Name:         it.Name,
		CategoryID:   it.CategoryID,
		CategoryName: it.CategoryName,
		CreatedAt:    it.CreatedAt,
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Message(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}

	return id, true
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListCategories(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]categoryResponse, len(cats))
	for i := range cats {
		resp[i] = toCategoryResponse(&cats[i])
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req category.CategoryParams
	if !render.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), req)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toCategoryResponse(c))
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.GetCategory(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toCategoryResponse(c))
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req category.CategoryParams
	if !render.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.UpdateCategory(r.Context(), id, req)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toCategoryResponse(c))
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	var categoryID *int64

	if s := r.URL.Query().Get("categoryId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			render.Error(w, r, validation.Field("categoryId", "must be a number"))
			return
		}

		categoryID = &id
	}

	items, err := h.svc.ListItems(r.Context(), categoryID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]itemResponse, len(items))
	for i := range items {
		resp[i] = toItemResponse(&items[i])
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req category.ItemParams
	if !render.Decode(w, r, &req) {
		return
	}

	it, err := h.svc.CreateItem(r.Context(), req)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toItemResponse(it))
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	it, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toItemResponse(it))
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req category.ItemParams
	if !render.Decode(w, r, &req) {
		return
	}

	it, err := h.svc.UpdateItem(r.Context(), id, req)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toItemResponse(it))
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
