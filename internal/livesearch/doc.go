// Package livesearch drives the debounced search-as-you-type flow for the
// live results panel. It shares the Naver search client with cover
// resolution but does no scoring or caching; its only guards are the
// debounce delay, last-query deduplication, and an ordering check on
// responses.
package livesearch
