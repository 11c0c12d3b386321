package dto

import "github.com/jsamuelsen/quotes-service/internal/domain"

// QuoteResponse is one quote on the wire.
type QuoteResponse struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Season  int    `json:"season"`
	Episode int    `json:"episode"`
}

// QuotesFromDomain converts domain quotes for the wire. The result is never
// nil so empty sets serialize as [] rather than null.
func QuotesFromDomain(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, QuoteResponse{
			Quote:   q.Text,
			Author:  q.Author,
			Season:  q.Season,
			Episode: q.Episode,
		})
	}

	return out
}

// Load statuses reported by LoadResponse.
const (
	LoadStatusSuccess = "success"
	LoadStatusError   = "error"
)

// LoadResponse reports the outcome of a reload.
type LoadResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Loaded  int    `json:"loaded,omitempty"`
	Skipped int    `json:"skipped,omitempty"`
}

// StatsResponse summarizes the stored quotes.
type StatsResponse struct {
	Total   int            `json:"total"`
	Authors map[string]int `json:"authors"`
}

// StatsFromDomain converts domain stats for the wire. The author map is never
// nil so it serializes as {} rather than null.
func StatsFromDomain(stats domain.AuthorStats) StatsResponse {
	authors := stats.ByAuthor
	if authors == nil {
		authors = map[string]int{}
	}

	return StatsResponse{
		Total:   stats.Total,
		Authors: authors,
	}
}
