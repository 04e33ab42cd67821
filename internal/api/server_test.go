// internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mafatih/internal/catalog"
	"mafatih/internal/common/logger"
	"mafatih/internal/models"
	"mafatih/internal/reminder"
)

// ==========================
// Fakes
// ==========================

type fakeResolver struct {
	queries []models.Query
}

func (f *fakeResolver) ResolveQuestion(ctx context.Context, q models.Query) models.AnswerRecord {
	f.queries = append(f.queries, q)
	return models.AnswerRecord{ID: "q-1", QuestionText: q.Text, AnswerText: "جواب", Confidence: 0.9, Tier: models.TierStaticKB}
}

func (f *fakeResolver) InterpretDream(ctx context.Context, q models.Query) models.DreamRecord {
	f.queries = append(f.queries, q)
	return models.DreamRecord{ID: "d-1", DreamText: q.Text, Confidence: 0.5, Tier: models.TierLocalSearch}
}

func (f *fakeResolver) RecommendVerse(ctx context.Context, q models.Query) models.VerseRecord {
	f.queries = append(f.queries, q)
	return models.VerseRecord{ID: "v-1", Mood: q.Text, Confidence: 0.8, Tier: models.TierLocalSearch}
}

type fakeCatalog struct {
	items      []models.ContentItem
	fallback   bool
	lastFilter catalog.Filters
	pageErr    error
}

func (f *fakeCatalog) ListCategories(ctx context.Context, lang string) catalog.Result[[]models.Category] {
	return catalog.Result[[]models.Category]{Data: []models.Category{{ID: 7, Title: "العقيدة"}}, UsingFallback: f.fallback}
}

func (f *fakeCatalog) ListContent(ctx context.Context, filters catalog.Filters) catalog.Result[[]models.ContentItem] {
	f.lastFilter = filters
	return catalog.Result[[]models.ContentItem]{Data: catalog.Apply(f.items, filters), UsingFallback: f.fallback}
}

func (f *fakeCatalog) GetPage(ctx context.Context, bookID, page int, langs []string) (*catalog.PageContent, error) {
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return &catalog.PageContent{BookID: bookID, PageNumber: page, AvailableLanguages: langs, TotalPages: 3}, nil
}

func (f *fakeCatalog) GetTableOfContents(ctx context.Context, bookID int, lang string) (*catalog.TableOfContents, error) {
	return nil, fmt.Errorf("%w: book %d has no titles", catalog.ErrNotFound, bookID)
}

func (f *fakeCatalog) GetBookInfo(ctx context.Context, bookID int) (*catalog.BookInfo, error) {
	return &catalog.BookInfo{ID: bookID, Title: "كتاب التوحيد", TotalPages: 125}, nil
}

func (f *fakeCatalog) TestConnection(ctx context.Context) catalog.Diagnostic {
	return catalog.Diagnostic{Working: false, Status: 403, Message: "Access forbidden (403)"}
}

type fakeSender struct {
	rem *models.Reminder
	err error
}

func (f *fakeSender) Send(ctx context.Context, req reminder.Request) (*models.Reminder, error) {
	return f.rem, f.err
}

func sampleItems() []models.ContentItem {
	return []models.ContentItem{
		{ID: 1, Title: "تفسير سورة الفاتحة", ContentType: "book", CategoryName: "تفسير القرآن", AuthorID: 1, AuthorName: "السعدي", PriorityLevel: 10},
		{ID: 2, Title: "أحكام الوضوء", ContentType: "book", CategoryName: "الفقه", AuthorID: 2, AuthorName: "ابن عثيمين", PriorityLevel: 9},
		{ID: 3, Title: "شرح الأسماء الحسنى", ContentType: "book", CategoryName: "العقيدة", AuthorID: 3, AuthorName: "البدر", PriorityLevel: 9},
	}
}

func newTestServer(t *testing.T, deps Deps) *httptest.Server {
	deps.Logger = logger.NewTestLogger(t)
	if deps.Resolver == nil {
		deps.Resolver = &fakeResolver{}
	}
	if deps.Catalog == nil {
		deps.Catalog = &fakeCatalog{items: sampleItems()}
	}
	srv := httptest.NewServer(New(deps).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

// ==========================
// Resolution endpoints
// ==========================

func TestResolutionEndpoints(t *testing.T) {
	resolver := &fakeResolver{}
	srv := newTestServer(t, Deps{Resolver: resolver})

	tests := []struct {
		path   string
		wantID string
	}{
		{"/api/ask", "q-1"},
		{"/api/dream", "d-1"},
		{"/api/verse", "v-1"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := postJSON(t, srv.URL+tt.path, `{"text":"نص","sessionId":"s-9","language":"ar"}`)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

			var body map[string]interface{}
			decode(t, resp, &body)
			assert.Equal(t, tt.wantID, body["id"])
		})
	}

	require.Len(t, resolver.queries, 3)
	for _, q := range resolver.queries {
		assert.Equal(t, models.Query{Text: "نص", SessionID: "s-9", Language: "ar"}, q)
	}
}

func TestAsk_EmptyBodyStillAnswers(t *testing.T) {
	resolver := &fakeResolver{}
	srv := newTestServer(t, Deps{Resolver: resolver})

	resp := postJSON(t, srv.URL+"/api/ask", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, resolver.queries, 1)
	assert.Equal(t, "", resolver.queries[0].Text)
}

func TestAsk_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp := postJSON(t, srv.URL+"/api/ask", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "INVALID_INPUT", body.Error.Code)
}

func TestAsk_BodyTooLarge(t *testing.T) {
	srv := newTestServer(t, Deps{})

	big := `{"text":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	resp := postJSON(t, srv.URL+"/api/ask", big)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAsk_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, Deps{})
	resp := get(t, srv.URL+"/api/ask")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAnalyze(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp := postJSON(t, srv.URL+"/api/analyze", `{"text":"حزين جدا اليوم"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body analyzeResponse
	decode(t, resp, &body)
	assert.Equal(t, models.SentimentNegative, body.Sentiment.Sentiment)
	assert.GreaterOrEqual(t, body.Sentiment.Confidence, 0.3)
	assert.LessOrEqual(t, body.Sentiment.Confidence, 0.9)
	assert.NotEmpty(t, body.Classification.TopicCategory)
}

func TestAnalyze_Empty(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp := postJSON(t, srv.URL+"/api/analyze", `{"text":"   "}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body analyzeResponse
	decode(t, resp, &body)
	assert.Equal(t, models.SentimentNeutral, body.Sentiment.Sentiment)
	assert.Equal(t, 0.3, body.Sentiment.Confidence)
	assert.Equal(t, models.TopicGeneral, body.Classification.TopicCategory)
	assert.Equal(t, 0.3, body.Classification.Confidence)
}

// ==========================
// Catalog endpoints
// ==========================

func TestCatalog_Filters(t *testing.T) {
	cat := &fakeCatalog{items: sampleItems(), fallback: true}
	srv := newTestServer(t, Deps{Catalog: cat})

	resp := get(t, srv.URL+"/api/catalog?type=book&sort=title&limit=2&lang=ar")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body catalogResponse
	decode(t, resp, &body)
	assert.True(t, body.UsingFallback)
	require.Len(t, body.Items, 2)
	assert.Equal(t, "أحكام الوضوء", body.Items[0].Title)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 2, body.Stats.Authors)
	assert.Equal(t, catalog.Filters{Lang: "ar", ContentType: "book", SortBy: "title", Limit: 2}, cat.lastFilter)
}

func TestCatalog_NoMatchesIsEmptyArray(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp := get(t, srv.URL+"/api/catalog?type=audio")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, []interface{}{}, body["items"])
}

func TestCatalog_InvalidParams(t *testing.T) {
	srv := newTestServer(t, Deps{})

	for _, q := range []string{"sort=random", "limit=-1", "offset=abc"} {
		t.Run(q, func(t *testing.T) {
			resp := get(t, srv.URL+"/api/catalog?"+q)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCatalog_LimitIsCapped(t *testing.T) {
	cat := &fakeCatalog{}
	srv := newTestServer(t, Deps{Catalog: cat})

	resp := get(t, srv.URL+"/api/catalog?limit=1000")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, maxPageSize, cat.lastFilter.Limit)
}

func TestCatalog_Page(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp := get(t, srv.URL+"/api/catalog/books/42/pages/2?langs=ar,%20en")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page catalog.PageContent
	decode(t, resp, &page)
	assert.Equal(t, 42, page.BookID)
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, []string{"ar", "en"}, page.AvailableLanguages)
}

func TestCatalog_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found sentinel", fmt.Errorf("%w: book 1 page 9", catalog.ErrNotFound), http.StatusNotFound, "CATALOG_NOT_FOUND"},
		{"upstream 404", &catalog.FetchError{Status: 404, Message: "gone"}, http.StatusNotFound, "CATALOG_NOT_FOUND"},
		{"upstream 500", &catalog.FetchError{Status: 500, Message: "Server error"}, http.StatusBadGateway, "CATALOG_FETCH_FAILED"},
		{"transport", stderrors.New("dial tcp: refused"), http.StatusBadGateway, "CATALOG_FETCH_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, Deps{Catalog: &fakeCatalog{pageErr: tt.err}})

			resp := get(t, srv.URL+"/api/catalog/books/1/pages/9")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			decode(t, resp, &body)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestCatalog_TOCNotFound(t *testing.T) {
	srv := newTestServer(t, Deps{})
	resp := get(t, srv.URL+"/api/catalog/books/5/toc")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalog_NonNumericIDIsNotRouted(t *testing.T) {
	srv := newTestServer(t, Deps{})
	resp := get(t, srv.URL+"/api/catalog/books/abc/toc")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalog_BookInfoAndCategories(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp := get(t, srv.URL+"/api/catalog/books/10")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var info catalog.BookInfo
	decode(t, resp, &info)
	assert.Equal(t, 10, info.ID)

	resp = get(t, srv.URL+"/api/catalog/categories")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cats categoriesResponse
	decode(t, resp, &cats)
	require.Len(t, cats.Categories, 1)
	assert.Equal(t, "العقيدة", cats.Categories[0].Title)
}

func TestCatalog_Diagnostics(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp := get(t, srv.URL+"/api/catalog/diagnostics")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var diag catalog.Diagnostic
	decode(t, resp, &diag)
	assert.False(t, diag.Working)
	assert.Equal(t, 403, diag.Status)
}

// ==========================
// Reminders
// ==========================

func TestReminders(t *testing.T) {
	sent := &models.Reminder{ID: "r-1", Kind: models.ReminderPrayer, Channel: models.ChannelEmail, Status: reminder.StatusSent, SentAt: time.Now()}
	disabled := &models.Reminder{ID: "r-2", Channel: models.ChannelSMS, Status: reminder.StatusDisabled}
	failed := &models.Reminder{ID: "r-3", Channel: models.ChannelEmail, Status: reminder.StatusFailed}

	tests := []struct {
		name       string
		sender     *fakeSender
		wantStatus int
		wantCode   string
	}{
		{"sent", &fakeSender{rem: sent}, http.StatusAccepted, ""},
		{"channel disabled", &fakeSender{rem: disabled}, http.StatusConflict, "NOTIFICATION_CHANNEL_DISABLED"},
		{"delivery failed", &fakeSender{rem: failed, err: fmt.Errorf("%w: throttled", reminder.ErrDeliveryFailed)}, http.StatusBadGateway, "NOTIFICATION_SEND_FAILED"},
		{"invalid", &fakeSender{err: fmt.Errorf("%w: unknown channel", reminder.ErrInvalidReminder)}, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, Deps{Reminders: tt.sender})

			resp := postJSON(t, srv.URL+"/api/reminders", `{"kind":"prayer","key":"fajr","channel":"email","recipient":"a@b.c"}`)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode == "" {
				return
			}
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			decode(t, resp, &body)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestReminders_NotConfigured(t *testing.T) {
	srv := newTestServer(t, Deps{})
	resp := postJSON(t, srv.URL+"/api/reminders", `{}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestReminders_ReadOnlyTables(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp := get(t, srv.URL+"/api/reminders/prayer-times")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var times struct {
		PrayerTimes map[string]string `json:"prayerTimes"`
	}
	decode(t, resp, &times)
	assert.Equal(t, "18:20", times.PrayerTimes["maghrib"])

	resp = get(t, srv.URL+"/api/reminders/templates")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tmpl struct {
		Templates []reminder.Template `json:"templates"`
	}
	decode(t, resp, &tmpl)
	assert.Len(t, tmpl.Templates, 9)
}

// ==========================
// Health, readiness, metrics
// ==========================

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Deps{Version: "1.2.3"})

	resp := get(t, srv.URL+"/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
}

func TestReady(t *testing.T) {
	healthy := newTestServer(t, Deps{Checks: map[string]Checker{
		"redis": func(ctx context.Context) error { return nil },
	}})
	resp := get(t, healthy.URL+"/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	broken := newTestServer(t, Deps{Checks: map[string]Checker{
		"redis":    func(ctx context.Context) error { return nil },
		"postgres": func(ctx context.Context) error { return stderrors.New("connection refused") },
	}})
	resp = get(t, broken.URL+"/ready")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, "ok", body.Checks["redis"])
	assert.Equal(t, "connection refused", body.Checks["postgres"])
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
