package models

import (
	"time"
)

// ListingEntry - элемент постраничного списка внешнего API: {name, url}.
type ListingEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListingPage - страница списка внешнего API.
// Next == nil (или пустая строка) - страниц больше нет.
type ListingPage struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []ListingEntry `json:"results"`
}

// SeedResult - итог одного прогона наполнения каталога.
type SeedResult struct {
	Generation string
	Pages      int
	Fetched    int
	Skipped    int
	Inserted   int
	Duration   time.Duration
}
