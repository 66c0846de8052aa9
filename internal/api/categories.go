package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
)

// CategoryRequest is the body of POST /categories.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.store.ListCategories()
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	writeData(w, http.StatusOK, cats)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	c := models.Category{Name: req.Name, Description: req.Description}
	if err := s.store.CreateCategory(&c); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, c)
}

// handleDeleteCategory refuses categories that still hold products unless
// ?force=true, which uncategorizes them.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteCategory(id, force); err != nil {
		writeFailure(w, r, err)
		return
	}
	logFor(r.Context()).Info("category deleted", "id", id, "force", force)
	w.WriteHeader(http.StatusNoContent)
}
