// internal/catalog/books.go
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// PageItem is one paragraph or heading of a book page, with its
// translations keyed by language code.
type PageItem struct {
	ID           int               `json:"id"`
	Tag          string            `json:"tag"`
	Type         string            `json:"type"`
	OriginalText string            `json:"original_text"`
	PageNumber   int               `json:"page_number"`
	Transes      map[string]string `json:"transes"`
}

// Text picks the translation for lang, then Arabic, then the original.
func (p PageItem) Text(lang string) string {
	if t := p.Transes[lang]; t != "" {
		return t
	}
	if t := p.Transes["ar"]; t != "" {
		return t
	}
	return p.OriginalText
}

type PageContent struct {
	BookID             int        `json:"bookId"`
	PageNumber         int        `json:"pageNumber"`
	Items              []PageItem `json:"items"`
	AvailableLanguages []string   `json:"availableLanguages"`
	TotalPages         int        `json:"totalPages"`
	Formatted          string     `json:"formatted"`
}

type Lesson struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	PageNumber int    `json:"pageNumber"`
}

type Chapter struct {
	Title      string   `json:"title"`
	PageNumber int      `json:"pageNumber"`
	Lessons    []Lesson `json:"lessons"`
}

type TableOfContents struct {
	BookID     int        `json:"bookId"`
	Titles     []PageItem `json:"titles"`
	Languages  []string   `json:"languages"`
	TotalPages int        `json:"totalPages"`
	Chapters   []Chapter  `json:"chapters"`
}

type BookInfo struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PriorityLevel int      `json:"priority_level"`
	Languages     []string `json:"languages"`
	Authors       []int    `json:"authors"`
	Categories    []int    `json:"categories"`
	BookType      int      `json:"book_type"`
	TotalPages    int      `json:"total_pages"`
}

type itemsResponse struct {
	Data []PageItem `json:"data"`
	Meta struct {
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

// GetPage fetches one page of a book in the requested languages. The first
// language drives the formatted rendering.
func (c *Client) GetPage(ctx context.Context, bookID, page int, langs []string) (*PageContent, error) {
	if len(langs) == 0 {
		langs = []string{"ar", "en"}
	}
	query := url.Values{
		"page_number": {strconv.Itoa(page)},
		"transes":     {strings.Join(langs, ",")},
	}

	var resp itemsResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/books/page-data/%d", bookID), query, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: book %d page %d", ErrNotFound, bookID, page)
	}

	total := resp.Meta.TotalPages
	if total <= 0 {
		total = 1
	}
	return &PageContent{
		BookID:             bookID,
		PageNumber:         page,
		Items:              resp.Data,
		AvailableLanguages: languagesOf(resp.Data),
		TotalPages:         total,
		Formatted:          FormatPage(resp.Data, langs[0]),
	}, nil
}

// FormatPage renders page items as markdown-style text.
func FormatPage(items []PageItem, lang string) string {
	var b strings.Builder
	for _, item := range items {
		switch item.Tag {
		case "h1":
			b.WriteString("# ")
		case "h2":
			b.WriteString("## ")
		case "h3":
			b.WriteString("### ")
		}
		b.WriteString(item.Text(lang))
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

// GetTableOfContents groups a book's headings: h1 opens a chapter and h2
// adds a lesson to the current one. h2 headings before the first h1 are
// dropped.
func (c *Client) GetTableOfContents(ctx context.Context, bookID int, lang string) (*TableOfContents, error) {
	if lang == "" {
		lang = "ar"
	}
	query := url.Values{"transes": {lang + ",ar"}}

	var resp itemsResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/books/book-titles/%d/", bookID), query, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: book %d has no titles", ErrNotFound, bookID)
	}

	toc := &TableOfContents{
		BookID:    bookID,
		Titles:    resp.Data,
		Languages: languagesOf(resp.Data),
		Chapters:  []Chapter{},
	}
	for _, title := range resp.Data {
		if title.PageNumber > toc.TotalPages {
			toc.TotalPages = title.PageNumber
		}
		switch title.Tag {
		case "h1":
			toc.Chapters = append(toc.Chapters, Chapter{
				Title:      title.Text(lang),
				PageNumber: title.PageNumber,
				Lessons:    []Lesson{},
			})
		case "h2":
			if len(toc.Chapters) == 0 {
				continue
			}
			current := &toc.Chapters[len(toc.Chapters)-1]
			current.Lessons = append(current.Lessons, Lesson{
				ID:         title.ID,
				Title:      title.Text(lang),
				PageNumber: title.PageNumber,
			})
		}
	}
	return toc, nil
}

func (c *Client) GetBookInfo(ctx context.Context, bookID int) (*BookInfo, error) {
	var resp struct {
		Data *BookInfo `json:"data"`
		Meta struct {
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	query := url.Values{"locale": {"ar"}}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/books/book-info/%d", bookID), query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.Data.ID == 0 {
		return nil, fmt.Errorf("%w: book %d", ErrNotFound, bookID)
	}
	if resp.Meta.TotalPages > 0 {
		resp.Data.TotalPages = resp.Meta.TotalPages
	}
	return resp.Data, nil
}

func languagesOf(items []PageItem) []string {
	seen := map[string]struct{}{}
	for _, item := range items {
		for lang := range item.Transes {
			seen[lang] = struct{}{}
		}
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
