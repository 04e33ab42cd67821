// internal/models/catalog.go
package models

// ContentItem is one entry of the Islam House catalog after enrichment.
type ContentItem struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ContentType     string   `json:"contentType"`
	AuthorID        int      `json:"authorId,omitempty"`
	AuthorName      string   `json:"authorName"`
	CategoryID      int      `json:"categoryId,omitempty"`
	CategoryName    string   `json:"categoryName"`
	URL             string   `json:"url"`
	Language        string   `json:"language"`
	PriorityLevel   int      `json:"priorityLevel"`
	Tags            []string `json:"tags"`
	FileSize        string   `json:"fileSize,omitempty"`
	PublicationDate string   `json:"publicationDate,omitempty"`
}

type Category struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	BooksCount int    `json:"booksCount,omitempty"`
}
