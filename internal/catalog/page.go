package catalog

import "fmt"

// Result is one normalized catalog photo.
type Result struct {
	URL              string // full image
	Thumb            string
	DownloadLocation string // usage-tracking target, hit before the image counts as used
	Attribution      string // rich text crediting author and catalog
	Author           string
}

// Page is one page of search results. PreviousPage and NextPage are 0 when
// there is no adjacent page.
type Page struct {
	Query        string
	Page         int
	TotalPages   int
	Total        int
	PreviousPage int
	NextPage     int
	Results      []Result
}

// HasPrevious reports whether a previous page exists.
func (p Page) HasPrevious() bool { return p.PreviousPage > 0 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.NextPage > 0 }

// Empty reports whether the page carries no results.
func (p Page) Empty() bool { return len(p.Results) == 0 }

// Label is the pagination text shown between the buttons.
func (p Page) Label() string {
	return fmt.Sprintf("Page %d / %d", p.Page, p.TotalPages)
}

// adjacent derives the neighbour pages from the remote page and total.
func adjacent(page, totalPages int) (prev, next int) {
	if page > 1 {
		prev = page - 1
	}
	if totalPages > page {
		next = page + 1
	}
	return prev, next
}

type rawSearch struct {
	Total      int         `json:"total"`
	TotalPages int         `json:"total_pages"`
	Results    []rawResult `json:"results"`
}

type rawResult struct {
	URLs struct {
		Regular string `json:"regular"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	Links struct {
		DownloadLocation string `json:"download_location"`
	} `json:"links"`
	User struct {
		Name  string `json:"name"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
}

// buildPage normalizes a raw response for the requested page and query.
func buildPage(raw rawSearch, page int, query, appName string) Page {
	prev, next := adjacent(page, raw.TotalPages)
	out := Page{
		Query:        query,
		Page:         page,
		TotalPages:   raw.TotalPages,
		Total:        raw.Total,
		PreviousPage: prev,
		NextPage:     next,
		Results:      make([]Result, 0, len(raw.Results)),
	}
	for _, r := range raw.Results {
		out.Results = append(out.Results, Result{
			URL:              r.URLs.Regular,
			Thumb:            r.URLs.Thumb,
			DownloadLocation: r.Links.DownloadLocation,
			Attribution:      attribution(r.User.Name, r.User.Links.HTML, appName),
			Author:           r.User.Name,
		})
	}
	return out
}

func attribution(name, profile, appName string) string {
	return fmt.Sprintf(
		`Photo by <a href="%s?utm_source=%s&utm_medium=referral">%s</a> on <a href="https://unsplash.com/?utm_source=%s&utm_medium=referral">Unsplash</a>`,
		profile, appName, name, appName,
	)
}
