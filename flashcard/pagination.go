package flashcard

const (
	DefaultPage  = 1
	DefaultLimit = 30
)

// PageRange returns the inclusive zero-based row range of a 1-based page.
func PageRange(page, limit int) (from, to int) {
	from = (page - 1) * limit
	to = from + limit - 1
	return from, to
}

// TotalPages is ceil(totalItems/limit), and 0 for an empty collection.
func TotalPages(totalItems int64, limit int) int {
	if limit <= 0 || totalItems <= 0 {
		return 0
	}
	l := int64(limit)
	return int((totalItems + l - 1) / l)
}
