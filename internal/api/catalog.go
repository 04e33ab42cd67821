// internal/api/catalog.go
package api

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"mafatih/internal/catalog"
	"mafatih/internal/common/errors"
	"mafatih/internal/models"
)

const maxPageSize = 100

type catalogResponse struct {
	Items         []models.ContentItem `json:"items"`
	Total         int                  `json:"total"`
	UsingFallback bool                 `json:"usingFallback"`
	Stats         catalog.ContentStats `json:"stats"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	res := s.deps.Catalog.ListContent(r.Context(), filters)
	items := res.Data
	if items == nil {
		items = []models.ContentItem{}
	}
	writeJSON(w, http.StatusOK, catalogResponse{
		Items:         items,
		Total:         len(items),
		UsingFallback: res.UsingFallback,
		Stats:         catalog.Stats(items),
	})
}

func parseFilters(q url.Values) (catalog.Filters, error) {
	f := catalog.Filters{
		Lang:        q.Get("lang"),
		ContentType: q.Get("type"),
		Category:    q.Get("category"),
		Author:      q.Get("author"),
		Search:      q.Get("search"),
		SortBy:      q.Get("sort"),
	}
	switch f.SortBy {
	case "", catalog.SortLatest, catalog.SortPopular, catalog.SortTitle:
	default:
		return f, errors.NewInvalidInputError("sort must be one of latest, popular, title")
	}

	var err error
	if f.Offset, err = intParam(q, "offset", 0); err != nil {
		return f, err
	}
	if f.Limit, err = intParam(q, "limit", 0); err != nil {
		return f, err
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	return f, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.NewInvalidInputError(name + " must be a non-negative integer")
	}
	return n, nil
}

type categoriesResponse struct {
	Categories    []models.Category `json:"categories"`
	UsingFallback bool              `json:"usingFallback"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	res := s.deps.Catalog.ListCategories(r.Context(), r.URL.Query().Get("lang"))
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: res.Data, UsingFallback: res.UsingFallback})
}

func (s *Server) handleBookInfo(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	info, err := s.deps.Catalog.GetBookInfo(r.Context(), id)
	if err != nil {
		writeError(w, catalogError(err))
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, _ := strconv.Atoi(vars["id"])
	page, _ := strconv.Atoi(vars["page"])

	var langs []string
	if raw := r.URL.Query().Get("langs"); raw != "" {
		for _, l := range strings.Split(raw, ",") {
			if l = strings.TrimSpace(l); l != "" {
				langs = append(langs, l)
			}
		}
	}

	content, err := s.deps.Catalog.GetPage(r.Context(), id, page, langs)
	if err != nil {
		writeError(w, catalogError(err))
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	toc, err := s.deps.Catalog.GetTableOfContents(r.Context(), id, r.URL.Query().Get("lang"))
	if err != nil {
		writeError(w, catalogError(err))
		return
	}
	writeJSON(w, http.StatusOK, toc)
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Catalog.TestConnection(r.Context()))
}

func catalogError(err error) error {
	if stderrors.Is(err, catalog.ErrNotFound) {
		return errors.NewCatalogNotFoundError(err.Error())
	}
	var fetchErr *catalog.FetchError
	if stderrors.As(err, &fetchErr) && fetchErr.Status == http.StatusNotFound {
		return errors.NewCatalogNotFoundError(fetchErr.Message)
	}
	return errors.NewCatalogFetchFailedError(err)
}
