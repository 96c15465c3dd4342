package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"NewsDigest/internal/domain"
)

const baseURL = "https://manas.edu.kg"

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestRenderGroupingStability(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{ID: 1, Locale: domain.LocaleEN, Title: "First", Date: day(2024, time.January, 2)},
		{ID: 2, Locale: domain.LocaleRU, Title: "Второй", Date: day(2024, time.January, 1)},
		{ID: 3, Locale: domain.LocaleEN, Title: "Third", Date: day(2024, time.January, 2)},
	}

	got := NewRenderer(baseURL).Render(articles)

	want := "<b>🇬🇧 News</b>\n" +
		"\n" +
		"<b>02.01.2024</b>\n" +
		"• <a href=\"https://manas.edu.kg/en/news/1\">First</a>\n" +
		"• <a href=\"https://manas.edu.kg/en/news/3\">Third</a>\n" +
		"\n" +
		"\n" +
		"<b>🇷🇺 Новости</b>\n" +
		"\n" +
		"<b>01.01.2024</b>\n" +
		"• <a href=\"https://manas.edu.kg/ru/news/2\">Второй</a>\n" +
		"\n"

	if got != want {
		t.Fatalf("unexpected digest:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderSortsDatesDescending(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{ID: 10, Locale: domain.LocaleEN, Title: "Older", Date: day(2024, time.March, 1)},
		{ID: 11, Locale: domain.LocaleEN, Title: "Newer", Date: day(2024, time.March, 2)},
	}

	got := NewRenderer(baseURL).Render(articles)

	newer := strings.Index(got, "02.03.2024")
	older := strings.Index(got, "01.03.2024")
	if newer < 0 || older < 0 {
		t.Fatalf("missing date headings in:\n%s", got)
	}
	if newer > older {
		t.Fatalf("expected most recent date first:\n%s", got)
	}

	if strings.Index(got, "news/11") > strings.Index(got, "news/10") {
		t.Fatalf("expected id 11 above id 10:\n%s", got)
	}
}

func TestRenderMergesNonAdjacentLocales(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{ID: 1, Locale: domain.LocaleEN, Title: "A", Date: day(2024, time.May, 1)},
		{ID: 2, Locale: domain.LocaleTR, Title: "B", Date: day(2024, time.May, 1)},
		{ID: 3, Locale: domain.LocaleEN, Title: "C", Date: day(2024, time.May, 1)},
	}

	got := NewRenderer(baseURL).Render(articles)

	if strings.Count(got, "<b>🇬🇧 News</b>") != 1 {
		t.Fatalf("expected one EN section:\n%s", got)
	}
	if strings.Count(got, "<b>🇹🇷 Haberler</b>") != 1 {
		t.Fatalf("expected one TR section:\n%s", got)
	}
	if strings.Index(got, "🇬🇧") > strings.Index(got, "🇹🇷") {
		t.Fatalf("expected locale sections in first-encountered order:\n%s", got)
	}
}

func TestRenderEscapesTitles(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{ID: 7, Locale: domain.LocaleEN, Title: "R&D <update>", Date: day(2024, time.June, 5)},
	}

	got := NewRenderer(baseURL).Render(articles)

	if !strings.Contains(got, "R&amp;D &lt;update&gt;") {
		t.Fatalf("expected escaped title in:\n%s", got)
	}
}

func TestRenderEmptyInput(t *testing.T) {
	t.Parallel()

	if got := NewRenderer(baseURL).Render(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestRenderGolden(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{ID: 512, Locale: domain.LocaleEN, Title: "Rector meets exchange students", Date: day(2024, time.March, 2)},
		{ID: 510, Locale: domain.LocaleEN, Title: "Library extends opening hours", Date: day(2024, time.March, 1)},
		{ID: 613, Locale: domain.LocaleTR, Title: "Bahar şenliği başladı", Date: day(2024, time.March, 2)},
	}

	g := goldie.New(t)
	g.Assert(t, "digest", []byte(NewRenderer(baseURL).Render(articles)))
}
