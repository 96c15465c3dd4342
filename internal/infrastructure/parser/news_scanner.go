package parser

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

const dateLayout = "02.01.2006"

// NewsScanner downloads a locale's listing page and extracts its articles.
type NewsScanner struct {
	baseURL string
	client  *http.Client
}

var _ ports.NewsSource = (*NewsScanner)(nil)

// NewNewsScanner wires an HTTP client; a nil client gets a 20s timeout default.
func NewNewsScanner(baseURL string, client *http.Client) *NewsScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &NewsScanner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// FetchArticles retrieves the listing document for locale and extracts every
// recognizable article from it.
func (s *NewsScanner) FetchArticles(ctx context.Context, locale domain.Locale) ([]domain.Article, error) {
	doc, err := s.fetchDocument(ctx, s.baseURL+"/"+string(locale))
	if err != nil {
		return nil, fmt.Errorf("locale %s: %w", locale, err)
	}

	return Extract(doc, locale)
}

func (s *NewsScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsDigest/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news site returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// Extract walks every article block in document order and returns the records
// it can derive. Blocks without an article-shaped link are navigation or promo
// noise and are skipped; a missing or malformed date span means the markup
// contract is broken, so the whole extract fails.
func Extract(doc *goquery.Document, locale domain.Locale) ([]domain.Article, error) {
	var (
		articles   []domain.Article
		extractErr error
	)

	doc.Find("article.post-news").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		body := block.Find("div.post-news-body").First()

		article, ok, err := parseBlock(body, locale)
		if err != nil {
			extractErr = err
			return false
		}
		if !ok {
			return true
		}

		articles = append(articles, article)
		return true
	})

	if extractErr != nil {
		return nil, fmt.Errorf("locale %s: %w", locale, extractErr)
	}

	return articles, nil
}

// parseBlock derives one Article from a post body. ok=false marks expected
// noise; an error marks a structural break in the markup.
func parseBlock(body *goquery.Selection, locale domain.Locale) (domain.Article, bool, error) {
	anchor := body.Find("a").First()
	if anchor.Length() == 0 {
		return domain.Article{}, false, nil
	}

	href, exists := anchor.Attr("href")
	if !exists || !strings.Contains(href, "news/") {
		return domain.Article{}, false, nil
	}

	segments := strings.Split(href, "/")
	id, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil || id <= 0 {
		return domain.Article{}, false, nil
	}

	title := strings.TrimSpace(anchor.Text())

	spans := body.Find("span")
	if spans.Length() == 0 {
		return domain.Article{}, false, fmt.Errorf("article %d: date span missing", id)
	}

	dateText := strings.TrimSpace(spans.Last().Text())
	date, err := time.Parse(dateLayout, dateText)
	if err != nil {
		return domain.Article{}, false, fmt.Errorf("article %d: parse date %q: %w", id, dateText, err)
	}

	return domain.Article{
		ID:     id,
		Locale: locale,
		Title:  title,
		Date:   date,
	}, true, nil
}
