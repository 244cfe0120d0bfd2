package scrape

import (
	"fmt"
	"strings"
)

// ListingURL builds the paginated films-list URL for a profile.
func ListingURL(baseURL, username string, page int) string {
	return fmt.Sprintf("%s/%s/films/page/%d/", strings.TrimSuffix(baseURL, "/"), username, page)
}

// DetailURL resolves a film link (absolute or site-relative) against the base URL.
func DetailURL(baseURL, filmLink string) string {
	if strings.HasPrefix(filmLink, "http://") || strings.HasPrefix(filmLink, "https://") {
		return filmLink
	}

	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(filmLink, "/")
}

// ExternalIDFromLink extracts the stable film slug from a film link.
// "/film/the-thing/" and "https://letterboxd.com/film/the-thing/" both
// yield "the-thing".
func ExternalIDFromLink(link string) string {
	link = strings.TrimSuffix(link, "/")

	if i := strings.Index(link, "/film/"); i >= 0 {
		return link[i+len("/film/"):]
	}

	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}

	return link
}
