// Package domain contains core business entities and rules.
package domain

import "time"

// Quote is a single quotation attributed to a show character.
// This is a domain entity - it has no knowledge of CSV, SQL, or HTTP.
type Quote struct {
	// ID is assigned by the storage engine on insert; zero before that.
	ID int64

	// Text is the quotation itself, with CSV quoting already resolved.
	Text string

	// Author is the character the quote is attributed to. Lookups by
	// author are case-insensitive.
	Author string

	// Season and Episode locate the quote within the show.
	Season  int
	Episode int

	// CreatedAt is assigned by the storage engine at insertion time.
	CreatedAt time.Time
}

// AuthorStats aggregates quote counts over the whole table.
type AuthorStats struct {
	// Total is the number of stored quotes.
	Total int

	// ByAuthor maps each stored author value to its quote count.
	ByAuthor map[string]int
}
