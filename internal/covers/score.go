package covers

import (
	"strings"
	"unicode/utf8"

	"bindery/internal/catalog"
	"bindery/internal/naver"
)

// ScoredCandidate pairs a search result with its match confidence against
// one record. It only lives for the duration of a resolution attempt.
type ScoredCandidate struct {
	Candidate naver.Item
	Score     int
}

// ScoreCandidate computes the match confidence between a record and one
// search result. The heuristic is containment-based rather than edit
// distance: catalog titles are frequently subtitled or reordered relative to
// the external listing, and containment tolerates prefix/suffix divergence
// cheaply.
func ScoreCandidate(policy Policy, rec catalog.Record, item naver.Item) int {
	policy = policy.normalized()
	score := 0

	recTitle := NormalizeKey(rec.Title)
	candTitle := NormalizeKey(item.Title)
	if containsEither(recTitle, candTitle) {
		score += policy.TitleFull
	} else {
		matched := 0
		for _, word := range strings.Fields(recTitle) {
			if utf8.RuneCountInString(word) < 2 {
				continue
			}
			if strings.Contains(candTitle, word) {
				matched++
			}
		}
		partial := policy.TitleWord * matched
		if partial > policy.TitleWordCap {
			partial = policy.TitleWordCap
		}
		score += partial
	}

	recAuthor := NormalizeAuthor(rec.Author)
	if recAuthor != "" && containsEither(recAuthor, NormalizeAuthor(item.Author)) {
		score += policy.Author
	}

	recPublisher := NormalizeKey(rec.Publisher)
	if recPublisher != "" && containsEither(recPublisher, NormalizeKey(item.Publisher)) {
		score += policy.Publisher
	}

	if strings.TrimSpace(item.ISBN) != "" {
		score += policy.Identifier
	}

	return score
}

// selectBestCandidate scores every item and returns the highest scorer. Ties
// resolve to the first encountered, i.e. the order the external service
// ranked them.
func selectBestCandidate(policy Policy, rec catalog.Record, items []naver.Item) (ScoredCandidate, bool) {
	best := ScoredCandidate{Score: -1}
	for _, item := range items {
		score := ScoreCandidate(policy, rec, item)
		if score > best.Score {
			best = ScoredCandidate{Candidate: item, Score: score}
		}
	}
	return best, best.Score >= 0
}

// containsEither reports whether one non-empty normalized string contains the
// other in full. Both must be non-empty: an absent field never corroborates a
// match.
func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
