package composer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"NewsIngestor/internal/domain"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	datePattern   = regexp.MustCompile(`\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4}\b`)
)

var (
	quoteMarks     = []string{`"`, "“", "”"}
	reportingVerbs = []string{"said", "told"}
	dataWords      = []string{"percent", "billion", "million", "data", "study"}
)

// KeyFacts returns the first count sentences that are at least minChars long.
func KeyFacts(text string, count, minChars int) []string {
	if count <= 0 {
		return nil
	}

	var facts []string
	for _, fragment := range sentenceSplit.Split(text, -1) {
		sentence := strings.TrimSpace(fragment)
		if utf8.RuneCountInString(sentence) < minChars {
			continue
		}
		facts = append(facts, sentence)
		if len(facts) == count {
			break
		}
	}
	return facts
}

// Signals are the shallow markers found in article text. Only quotes and
// data feed the fact-check status; dates enrich the key developments.
type Signals struct {
	HasQuotes bool
	HasData   bool
	HasDates  bool
}

// Detect scans text for quotes attributed with reporting verbs, data words
// and calendar dates such as "March 4, 2025".
func Detect(text string) Signals {
	lower := strings.ToLower(text)
	return Signals{
		HasQuotes: containsAny(text, quoteMarks) && containsAny(lower, reportingVerbs),
		HasData:   containsAny(lower, dataWords),
		HasDates:  datePattern.MatchString(text),
	}
}

// Status maps signals onto the fixed decision table.
func (s Signals) Status() domain.FactCheckStatus {
	switch {
	case s.HasQuotes && s.HasData:
		return domain.FactVerified
	case s.HasQuotes || s.HasData:
		return domain.FactMostlyTrue
	default:
		return domain.FactUnverified
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
