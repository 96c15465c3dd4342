package digest

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

const dateLayout = "02.01.2006"

// Renderer formats batches of new articles into Telegram-ready HTML text.
type Renderer struct {
	baseURL string
}

var _ ports.DigestRenderer = (*Renderer)(nil)

// NewRenderer binds the site base URL used to derive article links.
func NewRenderer(baseURL string) *Renderer {
	return &Renderer{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Render groups articles by locale in first-encountered order, sorts each
// group by date descending (stable, so same-day articles keep their input
// order) and emits one bolded section per locale with bolded date headings
// and bulleted title links. Empty input renders an empty string.
func (r *Renderer) Render(articles []domain.Article) string {
	if len(articles) == 0 {
		return ""
	}

	var order []domain.Locale
	groups := map[domain.Locale][]domain.Article{}
	for _, article := range articles {
		if _, ok := groups[article.Locale]; !ok {
			order = append(order, article.Locale)
		}
		groups[article.Locale] = append(groups[article.Locale], article)
	}

	var lines []string
	for _, locale := range order {
		group := groups[locale]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.After(group[j].Date)
		})

		lines = append(lines, fmt.Sprintf("<b>%s</b>", locale.Label()))

		var currentDate time.Time
		for _, article := range group {
			if !article.Date.Equal(currentDate) {
				currentDate = article.Date
				lines = append(lines, fmt.Sprintf("\n<b>%s</b>", article.Date.Format(dateLayout)))
			}
			lines = append(lines, fmt.Sprintf("• <a href=%q>%s</a>",
				article.URL(r.baseURL), html.EscapeString(article.Title)))
		}

		lines = append(lines, "\n")
	}

	return strings.Join(lines, "\n")
}
