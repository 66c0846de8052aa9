package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/catalog"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// FilterSummary describes one committed range as a client would show it.
type FilterSummary struct {
	Preset  string            `json:"preset"`
	Label   string            `json:"label"`
	Range   rangefilter.Range `json:"range"`
	Display string            `json:"display"`
}

// ProductListResponse is the data of GET /products.
type ProductListResponse struct {
	Products []models.Product         `json:"products"`
	Total    int                      `json:"total"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
	Filters  map[string]FilterSummary `json:"filters"`
}

// ProductRequest is the body of POST /products and PUT /products/{id}.
// Omitted fields keep their current value on update.
type ProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	SKU         *string  `json:"sku"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *string  `json:"category_id"`
	Status      *string  `json:"status"`
}

func (req ProductRequest) apply(p *models.Product) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		p.CategoryID = strings.TrimSpace(*req.CategoryID)
	}
	if req.Status != nil {
		p.Status = models.NormalizeStatus(*req.Status)
	}
}

// decodeBody reads a single JSON object, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty: %w", db.ErrInvalid)
		}
		return fmt.Errorf("decode body: %v: %w", err, db.ErrInvalid)
	}
	return nil
}

func (s *Server) summarize(d rangefilter.Domain, r rangefilter.Range) FilterSummary {
	id := rangefilter.Resolve(d, r)
	return FilterSummary{
		Preset:  id,
		Label:   d.Label(id),
		Range:   r,
		Display: d.Describe(r),
	}
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := catalog.ParseQuery(q)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	opts := db.ListProductsOptions{Filter: f}
	if st := strings.TrimSpace(q.Get("status")); st != "" {
		opts.Status = models.NormalizeStatus(st)
		if !models.IsValidStatus(opts.Status) {
			writeFailure(w, r, &catalog.QueryError{Param: "status", Value: st, Err: db.ErrInvalid})
			return
		}
	}
	if f.CategoryID != "" {
		c, err := s.store.GetCategory(f.CategoryID)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		opts.Filter.CategoryID = c.ID
	}

	products, err := s.store.ListProducts(opts)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	total, err := s.store.CountProducts(opts)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	resp := ProductListResponse{
		Products: products,
		Total:    total,
		Limit:    f.LimitOrDefault(),
		Offset:   f.Offset,
		Filters: map[string]FilterSummary{
			rangefilter.DomainPrice: s.summarize(s.price, f.Price),
			rangefilter.DomainStock: s.summarize(s.stock, f.Stock),
		},
	}
	for domain, sum := range resp.Filters {
		if sum.Preset != rangefilter.PresetAll {
			s.metrics.RecordFilter(domain, sum.Preset)
		}
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProduct(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	var p models.Product
	req.apply(&p)
	if err := s.store.CreateProduct(&p); err != nil {
		writeFailure(w, r, err)
		return
	}
	logFor(r.Context()).Info("product created", "id", p.ID, "price", p.Price, "stock", p.Stock)
	writeData(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	p, err := s.store.GetProduct(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	req.apply(p)
	if err := s.store.UpdateProduct(p); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteProduct(id); err != nil {
		writeFailure(w, r, err)
		return
	}
	logFor(r.Context()).Info("product deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
