package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsDigest/internal/domain"
)

const listingHTML = `
<html><body>
  <article class="post-news">
    <div class="post-news-body">
      <a href="/en/news/341">University hosts spring science fair</a>
      <span>Campus</span>
      <span>02.03.2024</span>
    </div>
  </article>
  <article class="post-news">
    <div class="post-news-body">
      <a href="/en/announcements">All announcements</a>
    </div>
  </article>
  <article class="post-news">
    <div class="post-news-body">
      <span>promo banner without a link</span>
    </div>
  </article>
  <article class="post-news">
    <div class="post-news-body">
      <a href="/en/news/latest">Latest news overview</a>
      <span>01.03.2024</span>
    </div>
  </article>
  <article class="post-news">
    <div class="post-news-body">
      <a href="/en/news/340">Exchange program applications open</a>
      <span>01.03.2024</span>
    </div>
  </article>
</body></html>`

func mustDocument(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

func TestExtractSkipsNoiseBlocks(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, listingHTML)

	articles, err := Extract(doc, domain.LocaleEN)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	if articles[0].ID != 341 || articles[1].ID != 340 {
		t.Fatalf("unexpected ids: %d, %d", articles[0].ID, articles[1].ID)
	}
	if articles[0].Title != "University hosts spring science fair" {
		t.Fatalf("unexpected title: %s", articles[0].Title)
	}
	if articles[0].Locale != domain.LocaleEN {
		t.Fatalf("unexpected locale: %s", articles[0].Locale)
	}

	wantDate := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	if !articles[0].Date.Equal(wantDate) {
		t.Fatalf("unexpected date: %v", articles[0].Date)
	}
}

func TestExtractDocumentOrder(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, listingHTML)

	articles, err := Extract(doc, domain.LocaleEN)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	// Extraction preserves document order; sorting is the renderer's job.
	if articles[0].ID < articles[1].ID {
		t.Fatalf("expected document order, got %d before %d", articles[0].ID, articles[1].ID)
	}
}

func TestExtractMalformedDateFails(t *testing.T) {
	t.Parallel()

	markup := `
	<article class="post-news">
	  <div class="post-news-body">
	    <a href="/ru/news/12">Заголовок</a>
	    <span>March 1st, 2024</span>
	  </div>
	</article>`

	doc := mustDocument(t, markup)

	if _, err := Extract(doc, domain.LocaleRU); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestExtractMissingDateSpanFails(t *testing.T) {
	t.Parallel()

	markup := `
	<article class="post-news">
	  <div class="post-news-body">
	    <a href="/tr/news/55">Duyuru</a>
	  </div>
	</article>`

	doc := mustDocument(t, markup)

	if _, err := Extract(doc, domain.LocaleTR); err == nil {
		t.Fatal("expected error for missing date span")
	}
}

func TestFetchArticles(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/en" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(listingHTML))
	}))
	defer server.Close()

	sc := NewNewsScanner(server.URL, server.Client())

	articles, err := sc.FetchArticles(context.Background(), domain.LocaleEN)
	if err != nil {
		t.Fatalf("FetchArticles error: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
}

func TestFetchArticlesBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	sc := NewNewsScanner(server.URL, server.Client())

	if _, err := sc.FetchArticles(context.Background(), domain.LocaleEN); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
