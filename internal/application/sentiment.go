package application

import "strings"

// Sentiment labels attached to stored chat messages.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "happy": {}, "better": {}, "calm": {},
	"relaxed": {}, "hopeful": {}, "grateful": {}, "excited": {}, "love": {},
	"well": {}, "fine": {}, "okay": {}, "proud": {}, "peaceful": {},
}

var negativeWords = map[string]struct{}{
	"sad": {}, "bad": {}, "anxious": {}, "worried": {}, "stressed": {},
	"depressed": {}, "angry": {}, "tired": {}, "lonely": {}, "hopeless": {},
	"scared": {}, "afraid": {}, "worse": {}, "hate": {}, "overwhelmed": {},
	"panic": {}, "cry": {}, "crying": {},
}

// ClassifySentiment derives a coarse sentiment label from a message by
// counting lexicon hits. Ties and empty input come out neutral.
func ClassifySentiment(text string) string {
	var pos, neg int
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	}) {
		if _, ok := positiveWords[w]; ok {
			pos++
		}
		if _, ok := negativeWords[w]; ok {
			neg++
		}
	}
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
