package jobs

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrUnsupportedShape is reported when a response has no recognisable list of jobs.
	ErrUnsupportedShape = errors.New("unsupported response shape")
	// ErrMissingCredentials is reported by sources queried without their API keys.
	ErrMissingCredentials = errors.New("missing source credentials")
)

// Source is a single job board adapter.
type Source interface {
	Name() string
	// Search returns normalised listings. Errors are handled by the aggregator
	// and never reach its callers.
	Search(ctx context.Context, query []string, location string) ([]*Listing, error)
}

// QueryTerms is the number of keywords used to build a search query.
const QueryTerms = 5

// BuildQuery joins the first QueryTerms keywords with spaces.
func BuildQuery(keywords []string) string {
	terms := make([]string, 0, QueryTerms)
	for _, kw := range keywords {
		if len(terms) == QueryTerms {
			break
		}
		if kw = strings.TrimSpace(kw); kw != "" {
			terms = append(terms, kw)
		}
	}
	return strings.Join(terms, " ")
}
