// Package pagination builds the {data, links, meta} envelope used by every
// paginated listing endpoint.
package pagination

import "fmt"

type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	LastPage    int   `json:"last_page"`
	Total       int64 `json:"total"`
}

type Links struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type Page struct {
	Data  interface{} `json:"data"`
	Links Links       `json:"links"`
	Meta  Meta        `json:"meta"`
}

func pageURL(path string, page, perPage int) string {
	return fmt.Sprintf("%s?page=%d&per_page=%d", path, page, perPage)
}

// New assembles a Page envelope. lastPage is always >= 1 so that links stay
// well-formed for empty result sets.
func New(path string, page, perPage int, total int64, data interface{}) Page {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	links := Links{
		First: pageURL(path, 1, perPage),
		Last:  pageURL(path, lastPage, perPage),
	}
	if page > 1 {
		prev := pageURL(path, page-1, perPage)
		links.Prev = &prev
	}
	if page < lastPage {
		next := pageURL(path, page+1, perPage)
		links.Next = &next
	}

	return Page{
		Data:  data,
		Links: links,
		Meta: Meta{
			CurrentPage: page,
			PerPage:     perPage,
			LastPage:    lastPage,
			Total:       total,
		},
	}
}
