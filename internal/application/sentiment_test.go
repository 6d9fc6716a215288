package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"positive single hit", "I feel great today", SentimentPositive},
		{"negative single hit", "I am so anxious about tomorrow", SentimentNegative},
		{"no lexicon hits", "the weather is cloudy", SentimentNeutral},
		{"tie is neutral", "good and bad at the same time", SentimentNeutral},
		{"majority wins", "sad and tired but a little hopeful", SentimentNegative},
		{"case insensitive", "GREAT, just GREAT", SentimentPositive},
		{"punctuation stripped", "stressed!!! worried...", SentimentNegative},
		{"empty input", "", SentimentNeutral},
		{"substring is not a hit", "sadness badge", SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySentiment(tt.text))
		})
	}
}
