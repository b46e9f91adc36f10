package search

// PerPage is the fixed number of results shown per page.
const PerPage = 5

// Bounds reports which page moves are allowed.
type Bounds struct {
	CanGoPrev bool
	CanGoNext bool
}

// Paginate derives page-move availability from the current page and the
// total reported by the last successful fetch.
func Paginate(page, perPage, total int) Bounds {
	return Bounds{
		CanGoPrev: page > 1,
		CanGoNext: page*perPage < total,
	}
}

// TotalPages returns the number of pages needed for total results, at least 1.
func TotalPages(perPage, total int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}
