package workouts

import (
	"net/url"
	"strconv"
	"strings"
)

// PerPage is the fixed number of workouts shown on one page.
const PerPage = 5

const listPath = "/workouts"

// Search is the URL-held state of the list view. Page is always >= 1;
// every other query parameter is carried along untouched.
type Search struct {
	Page   int
	values url.Values
}

// ParseSearch reads the page from q. Missing, non-numeric or non-positive
// values fall back to page 1 instead of failing.
func ParseSearch(q url.Values) Search {
	values := url.Values{}
	for k, v := range q {
		if k == "datastar" { // signals payload added by the SSE client
			continue
		}
		values[k] = append([]string(nil), v...)
	}

	page, err := strconv.Atoi(strings.TrimSpace(q.Get("page")))
	if err != nil || page < 1 {
		page = 1
	}
	values.Set("page", strconv.Itoa(page))
	return Search{Page: page, values: values}
}

// Href is the list URL for page, keeping every other search parameter.
func (s Search) Href(page int) string {
	return listPath + "?" + s.with(page).Encode()
}

// StreamHref is the SSE endpoint that swaps the table to page in place.
func (s Search) StreamHref(page int) string {
	return listPath + "/table?" + s.with(page).Encode()
}

// Current is the list URL for the page being shown.
func (s Search) Current() string { return s.Href(s.Page) }

func (s Search) with(page int) url.Values {
	if page < 1 {
		page = 1
	}
	out := url.Values{}
	for k, v := range s.values {
		out[k] = append([]string(nil), v...)
	}
	out.Set("page", strconv.Itoa(page))
	return out
}

// safeReturn keeps post-mutation redirects inside the list view.
func safeReturn(to string) string {
	if !strings.HasPrefix(to, listPath) || strings.HasPrefix(to, "//") {
		return listPath
	}
	u, err := url.Parse(to)
	if err != nil || u.Host != "" || u.Path != listPath {
		return listPath
	}
	return u.RequestURI()
}
