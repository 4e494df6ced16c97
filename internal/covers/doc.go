// Package covers implements cover resolution for catalog records.
//
// Given a record, the resolver decides what to search for on the Naver book
// API, scores each returned candidate against the record, commits to at most
// one cover, and caches the decision durably so the same record is never
// re-resolved before its cache entry expires. Negative decisions (searched,
// nothing matched) are cached too, with a shorter lifetime, to bound query
// volume against the external service.
//
// The batch scheduler applies the resolver to a filtered record list strictly
// sequentially and reports each outcome as it completes, so a rendering layer
// can replace placeholders incrementally.
package covers
