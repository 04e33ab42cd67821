// internal/catalog/content.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"mafatih/internal/common/metrics"
	"mafatih/internal/models"
)

const (
	SortLatest  = "latest"
	SortPopular = "popular"
	SortTitle   = "title"

	ContentTypeBook = "book"

	defaultCategoryName = "كتب إسلامية"
	defaultAuthorName   = "مؤلف غير معروف"
	defaultBookTypeName = "كتاب"
)

// Filters narrows a ListContent call. Every non-empty field must match.
type Filters struct {
	Lang        string `json:"lang,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Category    string `json:"category,omitempty"`
	Author      string `json:"author,omitempty"`
	Search      string `json:"search,omitempty"`
	SortBy      string `json:"sortBy,omitempty"`
	Offset      int    `json:"offset,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

type book struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PriorityLevel int      `json:"priority_level"`
	Languages     []string `json:"languages"`
	Authors       []int    `json:"authors"`
	Categories    []int    `json:"categories"`
	BookType      *int     `json:"book_type"`
	TotalPages    int      `json:"total_pages"`
}

type namedRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Name  string `json:"name"`
}

func (n namedRef) label() string {
	if n.Title != "" {
		return n.Title
	}
	return n.Name
}

type booksResponse struct {
	Data []book `json:"data"`
	Meta *struct {
		Authors    []namedRef `json:"authors"`
		Categories []namedRef `json:"categories"`
		BookTypes  []namedRef `json:"book_types"`
	} `json:"meta"`
}

// ListCategories returns the category tree roots. On failure the bundled
// category list is returned with UsingFallback set.
func (c *Client) ListCategories(ctx context.Context, lang string) Result[[]models.Category] {
	if lang == "" {
		lang = "ar"
	}

	var raw json.RawMessage
	err := c.do(ctx, http.MethodGet, "/categories", url.Values{"lang": {lang}}, nil, &raw)
	if err == nil {
		if categories, ok := decodeCategories(raw); ok {
			return Result[[]models.Category]{Data: categories}
		}
		err = &FetchError{Message: "unexpected categories response"}
	}

	c.logger.Warn("Using fallback categories", map[string]interface{}{"error": err.Error()})
	metrics.CatalogFallbacksTotal.Inc()
	return Result[[]models.Category]{Data: fallbackCategories(), UsingFallback: true, Err: err}
}

// decodeCategories accepts both {data:[...]} and a bare array.
func decodeCategories(raw json.RawMessage) ([]models.Category, bool) {
	var refs []namedRef
	var envelope struct {
		Data []namedRef `json:"data"`
	}
	switch {
	case json.Unmarshal(raw, &envelope) == nil && envelope.Data != nil:
		refs = envelope.Data
	case json.Unmarshal(raw, &refs) == nil && refs != nil:
	default:
		return nil, false
	}

	categories := make([]models.Category, 0, len(refs))
	for _, ref := range refs {
		categories = append(categories, models.Category{ID: ref.ID, Title: ref.label()})
	}
	return categories, true
}

// ListContent lists the catalog with filters, sort and pagination applied
// in memory. Live results are cached; the offline catalog never is.
func (c *Client) ListContent(ctx context.Context, filters Filters) Result[[]models.ContentItem] {
	items, err := c.books(ctx, filters.Lang)
	if err != nil {
		c.logger.Warn("Using fallback catalog", map[string]interface{}{"error": err.Error()})
		metrics.CatalogFallbacksTotal.Inc()
		return Result[[]models.ContentItem]{
			Data:          Apply(fallbackContent(), filters),
			UsingFallback: true,
			Err:           err,
		}
	}
	return Result[[]models.ContentItem]{Data: Apply(items, filters)}
}

func (c *Client) books(ctx context.Context, lang string) ([]models.ContentItem, error) {
	if lang == "" {
		lang = "ar"
	}
	key := "catalog:books:" + lang

	if c.cache != nil {
		if data, ok := c.cache.Get(ctx, key); ok {
			var items []models.ContentItem
			if err := json.Unmarshal(data, &items); err == nil {
				return items, nil
			}
		}
	}

	var resp booksResponse
	if err := c.do(ctx, http.MethodPost, "/books/list-books", nil, map[string]string{"lang": lang}, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &FetchError{Message: "unexpected books response"}
	}

	items := enrich(resp)
	if c.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			_ = c.cache.Set(ctx, key, data)
		}
	}
	return items, nil
}

// enrich resolves author, category and type ids against the response meta.
func enrich(resp booksResponse) []models.ContentItem {
	authors := map[int]string{}
	categories := map[int]string{}
	bookTypes := map[int]string{}
	if resp.Meta != nil {
		for _, a := range resp.Meta.Authors {
			authors[a.ID] = a.label()
		}
		for _, cat := range resp.Meta.Categories {
			categories[cat.ID] = cat.label()
		}
		for _, bt := range resp.Meta.BookTypes {
			bookTypes[bt.ID] = bt.label()
		}
	}

	items := make([]models.ContentItem, 0, len(resp.Data))
	for _, b := range resp.Data {
		var authorNames, categoryNames []string
		for _, id := range b.Authors {
			name, ok := authors[id]
			if !ok {
				name = fmt.Sprintf("Author %d", id)
			}
			authorNames = append(authorNames, name)
		}
		for _, id := range b.Categories {
			name, ok := categories[id]
			if !ok {
				name = fmt.Sprintf("Category %d", id)
			}
			categoryNames = append(categoryNames, name)
		}
		typeName := defaultBookTypeName
		if b.BookType != nil {
			if name, ok := bookTypes[*b.BookType]; ok && name != "" {
				typeName = name
			}
		}
		items = append(items, toContentItem(b, authorNames, categoryNames, typeName))
	}
	return items
}

func toContentItem(b book, authorNames, categoryNames []string, typeName string) models.ContentItem {
	pages := ""
	if b.TotalPages > 0 {
		pages = strconv.Itoa(b.TotalPages) + " صفحة"
	}

	item := models.ContentItem{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		ContentType:   ContentTypeBook,
		AuthorName:    defaultAuthorName,
		CategoryName:  defaultCategoryName,
		URL:           fmt.Sprintf("https://islamhouse.com/ar/books/%d", b.ID),
		Language:      "ar",
		PriorityLevel: b.PriorityLevel,
		FileSize:      pages,
	}
	if item.Description == "" {
		item.Description = "كتاب إسلامي: " + b.Title
		if pages != "" {
			item.Description += fmt.Sprintf(" (عدد الصفحات: %d)", b.TotalPages)
		}
	}
	if len(b.Authors) > 0 {
		item.AuthorID = b.Authors[0]
	}
	if len(authorNames) > 0 {
		item.AuthorName = authorNames[0]
	}
	if len(b.Categories) > 0 {
		item.CategoryID = b.Categories[0]
	}
	if len(categoryNames) > 0 {
		item.CategoryName = categoryNames[0]
	}
	if len(b.Languages) > 0 {
		item.Language = b.Languages[0]
	}

	item.Tags = append(append([]string{}, categoryNames...), authorNames...)
	item.Tags = append(item.Tags, typeName)
	if pages != "" {
		item.Tags = append(item.Tags, pages)
	}
	return item
}

// Apply filters, sorts and paginates items. The input slice is not
// modified.
func Apply(items []models.ContentItem, filters Filters) []models.ContentItem {
	search := strings.ToLower(strings.TrimSpace(filters.Search))

	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if filters.ContentType != "" && item.ContentType != filters.ContentType {
			continue
		}
		if filters.Category != "" && !matchesRef(filters.Category, item.CategoryID, item.CategoryName) {
			continue
		}
		if filters.Author != "" && !matchesRef(filters.Author, item.AuthorID, item.AuthorName) {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		out = append(out, item)
	}

	switch filters.SortBy {
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriorityLevel > out[j].PriorityLevel })
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}

	if filters.Offset > 0 {
		if filters.Offset >= len(out) {
			return []models.ContentItem{}
		}
		out = out[filters.Offset:]
	}
	if filters.Limit > 0 && filters.Limit < len(out) {
		out = out[:filters.Limit]
	}
	return out
}

// matchesRef compares a filter against either the numeric id or the name.
func matchesRef(filter string, id int, name string) bool {
	if filter == name {
		return true
	}
	n, err := strconv.Atoi(filter)
	return err == nil && n == id
}

func matchesSearch(item models.ContentItem, search string) bool {
	return strings.Contains(strings.ToLower(item.Title), search) ||
		strings.Contains(strings.ToLower(item.Description), search) ||
		strings.Contains(strings.ToLower(item.AuthorName), search)
}

// ContentStats summarizes a list of items.
type ContentStats struct {
	Total   int            `json:"total"`
	ByType  map[string]int `json:"byType"`
	Authors int            `json:"authors"`
}

func Stats(items []models.ContentItem) ContentStats {
	stats := ContentStats{Total: len(items), ByType: map[string]int{}}
	authors := map[string]struct{}{}
	for _, item := range items {
		stats.ByType[item.ContentType]++
		key := item.AuthorName
		if item.AuthorID != 0 {
			key = strconv.Itoa(item.AuthorID)
		}
		if key != "" {
			authors[key] = struct{}{}
		}
	}
	stats.Authors = len(authors)
	return stats
}
