package covers

import (
	"testing"

	"bindery/internal/catalog"
	"bindery/internal/naver"
)

func TestScoreFullTitleContainment(t *testing.T) {
	rec := catalog.Record{Title: "자료구조"}
	item := naver.Item{Title: "<b>자료구조</b> 개론"}

	got := ScoreCandidate(DefaultPolicy(), rec, item)
	if got != 70 {
		t.Errorf("score = %d, want 70 for full containment with no other signal", got)
	}
	if got < DefaultPolicy().PassThreshold {
		t.Error("full title containment alone must pass the threshold")
	}
}

func TestScorePartialTitleWordsCannotPass(t *testing.T) {
	// Three record-title words (each >= 2 runes) found in the candidate, no
	// other signal: min(3*10, 40) = 30, below the threshold.
	rec := catalog.Record{Title: "데이터 분석 입문 X"}
	item := naver.Item{Title: "빅데이터 기초 분석 그리고 입문자용 완벽 가이드"}

	got := ScoreCandidate(DefaultPolicy(), rec, item)
	if got != 30 {
		t.Errorf("score = %d, want 30", got)
	}
	if got >= DefaultPolicy().PassThreshold {
		t.Error("partial title overlap alone must not pass the threshold")
	}
}

func TestScorePartialTitleCapped(t *testing.T) {
	// Word order differs so full containment fails; all six words match as
	// substrings. Six matching words would be 60 uncapped; the cap is 40.
	rec := catalog.Record{Title: "하나 둘셋 넷다 다섯 여섯 일곱"}
	item := naver.Item{Title: "일곱 여섯 다섯 넷다 둘셋 하나"}
	got := ScoreCandidate(DefaultPolicy(), rec, item)
	if got != 40 {
		t.Errorf("score = %d, want capped 40", got)
	}
}

func TestScoreAuthorMonotonic(t *testing.T) {
	rec := catalog.Record{Title: "자료구조", Author: "홍길동"}
	withoutAuthor := naver.Item{Title: "자료구조 개론"}
	withAuthor := naver.Item{Title: "자료구조 개론", Author: "홍길동 지음"}

	base := ScoreCandidate(DefaultPolicy(), rec, withoutAuthor)
	boosted := ScoreCandidate(DefaultPolicy(), rec, withAuthor)
	if boosted <= base {
		t.Errorf("author match must increase score: %d -> %d", base, boosted)
	}
	if boosted != base+25 {
		t.Errorf("author containment worth 25, got %d -> %d", base, boosted)
	}
}

func TestScoreEmptyRecordAuthorNeverAwards(t *testing.T) {
	rec := catalog.Record{Title: "자료구조"}
	item := naver.Item{Title: "자료구조", Author: "아무개"}
	if got := ScoreCandidate(DefaultPolicy(), rec, item); got != 70 {
		t.Errorf("score = %d, candidate author must not score against empty record author", got)
	}
}

func TestScoreEmptyCandidateAuthorNeverAwards(t *testing.T) {
	// A record author can never be "contained" by an absent candidate author.
	rec := catalog.Record{Title: "자료구조", Author: "홍길동"}
	item := naver.Item{Title: "자료구조"}
	if got := ScoreCandidate(DefaultPolicy(), rec, item); got != 70 {
		t.Errorf("score = %d, empty candidate author must not corroborate", got)
	}
}

func TestScoreIdentifierPresence(t *testing.T) {
	rec := catalog.Record{Title: "자료구조"}
	plain := ScoreCandidate(DefaultPolicy(), rec, naver.Item{Title: "자료구조"})
	withISBN := ScoreCandidate(DefaultPolicy(), rec, naver.Item{Title: "자료구조", ISBN: "9791162241234"})
	if withISBN != plain+3 {
		t.Errorf("identifier presence worth 3: %d -> %d", plain, withISBN)
	}
}

func TestScoreEndToEndScenario(t *testing.T) {
	// The canonical passing case: full title containment (70) + author with
	// role suffix stripped (25) + publisher prefix containment (12) = 107.
	rec := catalog.Record{Title: "자료구조", Author: "홍길동", Publisher: "한빛"}
	item := naver.Item{
		Title:     "<b>자료구조</b> 개론",
		Author:    "홍길동 지음",
		Publisher: "한빛미디어",
	}

	got := ScoreCandidate(DefaultPolicy(), rec, item)
	if got != 107 {
		t.Errorf("score = %d, want 107", got)
	}
	if got < DefaultPolicy().PassThreshold {
		t.Error("canonical scenario must pass")
	}
}

func TestSelectBestCandidateTiesKeepFirst(t *testing.T) {
	rec := catalog.Record{Title: "자료구조"}
	items := []naver.Item{
		{Title: "자료구조", Image: "http://first"},
		{Title: "자료구조", Image: "http://second"},
	}
	best, ok := selectBestCandidate(DefaultPolicy(), rec, items)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if best.Candidate.Image != "http://first" {
		t.Errorf("tie must resolve to the first candidate, got %q", best.Candidate.Image)
	}
}

func TestPolicyNormalizedFillsZeroValues(t *testing.T) {
	p := Policy{PassThreshold: 80}.normalized()
	if p.PassThreshold != 80 {
		t.Errorf("explicit threshold overwritten: %d", p.PassThreshold)
	}
	if p.TitleFull != defaultTitleFull || p.MaxTiers != defaultMaxTiers {
		t.Errorf("zero fields not defaulted: %+v", p)
	}
}
