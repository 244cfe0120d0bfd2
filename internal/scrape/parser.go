// Package scrape turns a public film-diary profile into structured movie
// records. The Fetcher owns network access and its politeness discipline;
// the parser in this file is pure and touches nothing but the markup it is
// given, so a site layout change stays contained here.
package scrape

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Credit list caps, matching what the source site shows inline.
const (
	maxCast    = 30
	maxCredits = 5
)

// ListingEntry is the minimal per-film data present on a listing page.
type ListingEntry struct {
	ExternalID string
	Title      string
	FilmLink   string
	Rating     *float64
}

// Detail holds the full metadata parsed from a film detail page.
type Detail struct {
	Year           int
	RuntimeMinutes int
	ExternalRating *float64
	PosterURL      string
	Director       string
	Cast           string
	Writers        string
}

// ParseListing extracts film entries from a films-list page. A page whose
// poster grid is present but empty yields an empty slice (end of
// pagination); a page without the grid at all is malformed.
func ParseListing(markup string) ([]ListingEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &MalformedPageError{Anchor: "parseable HTML"}
	}

	items := doc.Find("li.griditem")
	if items.Length() == 0 {
		if doc.Find("ul.poster-list").Length() == 0 {
			return nil, &MalformedPageError{Anchor: "ul.poster-list"}
		}

		return []ListingEntry{}, nil
	}

	entries := make([]ListingEntry, 0, items.Length())

	items.Each(func(_ int, sel *goquery.Selection) {
		title := sel.AttrOr("data-film-name", "")
		link := sel.AttrOr("data-film-link", "")

		// Newer grid markup moves the data attributes onto a nested
		// react component.
		if title == "" || link == "" {
			comp := sel.Find("div.react-component").First()
			title = comp.AttrOr("data-item-name", title)
			link = comp.AttrOr("data-item-link", link)
		}

		if title == "" || link == "" {
			return
		}

		entry := ListingEntry{
			ExternalID: ExternalIDFromLink(link),
			Title:      title,
			FilmLink:   link,
		}

		if text := strings.TrimSpace(sel.Find("p.poster-viewingdata span.rating").Text()); text != "" {
			if r, err := ParseStars(text); err == nil && r > 0 {
				entry.Rating = &r
			}
		}

		entries = append(entries, entry)
	})

	return entries, nil
}

// ParseDetail extracts full film metadata from a detail page. Individually
// missing fields degrade to their zero values; only a page with none of the
// expected anchors is malformed.
func ParseDetail(markup string) (*Detail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &MalformedPageError{Anchor: "parseable HTML"}
	}

	if doc.Find("span.releasedate, div#tab-crew, p.text-link.text-footer").Length() == 0 {
		return nil, &MalformedPageError{Anchor: "film detail sections"}
	}

	d := &Detail{}

	if text := strings.TrimSpace(doc.Find("span.releasedate").First().Text()); text != "" {
		if year, err := strconv.Atoi(text); err == nil {
			d.Year = year
		}
	}

	d.RuntimeMinutes = parseRuntime(doc.Find("p.text-link.text-footer").First().Text())

	if content := doc.Find("meta[name='twitter:data2']").AttrOr("content", ""); content != "" {
		if r := parseSiteRating(content); r != nil {
			d.ExternalRating = r
		}
	}

	d.PosterURL = parsePoster(doc)
	d.Director = parseCrewSection(doc, "Director", "Assistant", "Original")
	d.Writers = parseCrewSection(doc, "Writer", "Original", "Story", "Screenplay")
	d.Cast = parseCast(doc)

	return d, nil
}

// parseRuntime extracts a minute count from runtime text such as
// "148 mins  More at IMDb" or "2h 28m". Unparsable text yields 0 (unknown).
func parseRuntime(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if fields := strings.Fields(text); len(fields) > 0 {
		if mins, err := strconv.Atoi(fields[0]); err == nil && mins >= 0 {
			return mins
		}
	}

	if strings.Contains(text, "h") && strings.Contains(text, "m") {
		hParts := strings.SplitN(text, "h", 2)

		hours, err := strconv.Atoi(strings.TrimSpace(hParts[0]))
		if err != nil {
			return 0
		}

		mParts := strings.SplitN(hParts[1], "m", 2)

		mins, err := strconv.Atoi(strings.TrimSpace(mParts[0]))
		if err != nil {
			return 0
		}

		if hours < 0 || mins < 0 {
			return 0
		}

		return hours*60 + mins
	}

	return 0
}

// parseSiteRating extracts the decimal from rating text like "4.55 out of 5".
func parseSiteRating(text string) *float64 {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return nil
	}

	r, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || r < 0 || r > 5 {
		return nil
	}

	return &r
}

// parsePoster pulls the poster image URL out of the page's LD+JSON block.
func parsePoster(doc *goquery.Document) string {
	var poster string

	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := strings.TrimSpace(sel.Text())
		raw = strings.TrimPrefix(raw, "/* <![CDATA[ */")
		raw = strings.TrimSuffix(raw, "/* ]]> */")

		var data map[string]any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return true
		}

		if img, ok := data["image"].(string); ok && img != "" {
			poster = img

			return false
		}

		return true
	})

	return poster
}

// parseCrewSection collects names under the crew heading containing want,
// skipping headings that also contain any of the exclude markers
// ("Assistant Director", "Original Writer" and similar variants).
func parseCrewSection(doc *goquery.Document, want string, exclude ...string) string {
	var names []string

	doc.Find("div#tab-crew h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		heading := strings.TrimSpace(h.Text())
		if !strings.Contains(heading, want) {
			return true
		}

		for _, ex := range exclude {
			if strings.Contains(heading, ex) {
				return true
			}
		}

		h.Next().Find("a.text-slug").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if len(names) >= maxCredits {
				return false
			}

			if name := strings.TrimSpace(a.Text()); name != "" {
				names = append(names, name)
			}

			return true
		})

		return false
	})

	return strings.Join(names, ", ")
}

// parseCast collects up to maxCast actor names, skipping the overflow link.
func parseCast(doc *goquery.Document) string {
	var names []string

	doc.Find("div.cast-list a.text-slug").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(names) >= maxCast {
			return false
		}

		if a.AttrOr("id", "") == "has-cast-overflow" {
			return true
		}

		name := strings.TrimSpace(a.Text())
		if name == "" || strings.Contains(strings.ToLower(name), "show all") {
			return true
		}

		names = append(names, name)

		return true
	})

	return strings.Join(names, ", ")
}
