package covers

// Policy holds the scoring weights and acceptance threshold for candidate
// evaluation. The weights were calibrated empirically against Naver result
// quality; treat them as tuning knobs, not semantically meaningful constants.
type Policy struct {
	// TitleFull is awarded when one normalized title fully contains the other.
	TitleFull int
	// TitleWord is awarded per record-title word found in the candidate title
	// when full containment fails, capped at TitleWordCap.
	TitleWord    int
	TitleWordCap int
	// Author is awarded for mutual author containment.
	Author int
	// Publisher is awarded for mutual publisher containment.
	Publisher int
	// Identifier is awarded when the candidate carries any ISBN at all. A weak
	// corroborating signal, not a matching one.
	Identifier int
	// PassThreshold is the minimum total score accepted as a confirmed match.
	PassThreshold int
	// MaxTiers bounds how many query tiers a single resolution may attempt.
	MaxTiers int
	// ResultCount is how many search results each tier requests.
	ResultCount int
}

const (
	defaultTitleFull     = 70
	defaultTitleWord     = 10
	defaultTitleWordCap  = 40
	defaultAuthorWeight  = 25
	defaultPublisher     = 12
	defaultIdentifier    = 3
	defaultPassThreshold = 60
	defaultMaxTiers      = 3
	defaultResultCount   = 5
)

// DefaultPolicy returns the calibrated default weights. Maximum achievable
// score is 110 (70+25+12+3); the threshold of 60 lets title+author pass
// comfortably while partial title overlap alone (at most 40) cannot.
func DefaultPolicy() Policy {
	return Policy{
		TitleFull:     defaultTitleFull,
		TitleWord:     defaultTitleWord,
		TitleWordCap:  defaultTitleWordCap,
		Author:        defaultAuthorWeight,
		Publisher:     defaultPublisher,
		Identifier:    defaultIdentifier,
		PassThreshold: defaultPassThreshold,
		MaxTiers:      defaultMaxTiers,
		ResultCount:   defaultResultCount,
	}
}

// normalized fills zero values with defaults so a partially specified policy
// stays usable.
func (p Policy) normalized() Policy {
	def := DefaultPolicy()
	if p.TitleFull <= 0 {
		p.TitleFull = def.TitleFull
	}
	if p.TitleWord <= 0 {
		p.TitleWord = def.TitleWord
	}
	if p.TitleWordCap <= 0 {
		p.TitleWordCap = def.TitleWordCap
	}
	if p.Author <= 0 {
		p.Author = def.Author
	}
	if p.Publisher <= 0 {
		p.Publisher = def.Publisher
	}
	if p.Identifier <= 0 {
		p.Identifier = def.Identifier
	}
	if p.PassThreshold <= 0 {
		p.PassThreshold = def.PassThreshold
	}
	if p.MaxTiers <= 0 {
		p.MaxTiers = def.MaxTiers
	}
	if p.ResultCount <= 0 {
		p.ResultCount = def.ResultCount
	}
	return p
}
