package flow

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// FAQSimilarityCutoff is the minimum normalized similarity for a fuzzy FAQ
// match. Deliberately permissive so partial phrasings still land.
const FAQSimilarityCutoff = 0.4

// FindAnswer fuzzy-matches the query against the FAQ question set and
// returns the answer of the single best match at or above the cutoff.
func FindAnswer(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	metric := metrics.NewLevenshtein()
	best := -1.0
	answer := ""
	for _, entry := range faqs {
		score := strutil.Similarity(q, entry.Question, metric)
		if score > best {
			best = score
			answer = entry.Answer
		}
	}
	if best < FAQSimilarityCutoff {
		return "", false
	}
	return answer, true
}

// faqAnswer returns the canned answer for an exact FAQ question. Used by
// menu options that alias a specific entry.
func faqAnswer(question string) string {
	for _, entry := range faqs {
		if entry.Question == question {
			return entry.Answer
		}
	}
	return FallbackMessage
}
