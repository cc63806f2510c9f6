package store

// Pagination defaults and bounds.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// ListParams contains pagination request parameters for list queries.
type ListParams struct {
	Limit  int // items per page (defaults to 100 with a maximum of 1000)
	Offset int // items to skip (zero for first page)
}

// DefaultListParams returns sensible defaults.
func DefaultListParams() ListParams {
	return ListParams{Limit: DefaultLimit}
}

// Validate checks and corrects pagination parameters.
func (p *ListParams) Validate() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
