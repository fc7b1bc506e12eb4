package pagination

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 24
	// MaxPerPage caps how many rows any listing query can request.
	MaxPerPage = 100
)

// Page holds normalized offset pagination inputs.
type Page struct {
	Number  int
	PerPage int
}

// Normalize clamps raw page inputs into a valid Page.
func Normalize(number, perPage int) Page {
	if number < 1 {
		number = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Number: number, PerPage: perPage}
}

// Offset returns the row offset for SQL queries.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Limit returns the row limit for SQL queries.
func (p Page) Limit() int {
	return p.PerPage
}
