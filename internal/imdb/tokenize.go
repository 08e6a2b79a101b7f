package imdb

import (
	"sort"
	"strings"
)

// tokenFilter lists the characters stripped before splitting, matching the
// conventional text-to-word-sequence preprocessing for this corpus.
const tokenFilter = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~\t\n"

var filterReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, 2*len(tokenFilter))
	for _, c := range tokenFilter {
		pairs = append(pairs, string(c), " ")
	}
	return strings.NewReplacer(pairs...)
}()

// tokenize lowercases text, replaces punctuation with spaces and splits on
// whitespace.
func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	filtered := filterReplacer.Replace(lowered)
	return strings.Fields(filtered)
}

// review is one raw text with its sentiment label and split assignment.
type review struct {
	text  string
	label float32 // 0 = negative, 1 = positive
	train bool
}

// encodeCorpus tokenizes all reviews, builds the frequency-rank word index
// over the whole corpus and encodes every review as a rank sequence.
//
// Rank 1 is the most frequent word. Ties are broken alphabetically so the
// index is deterministic.
func encodeCorpus(reviews []review) *rawCorpus {
	tokenized := make([][]string, len(reviews))
	counts := make(map[string]int)
	for i, r := range reviews {
		words := tokenize(r.text)
		tokenized[i] = words
		for _, w := range words {
			counts[w]++
		}
	}

	ranks := buildWordIndex(counts)

	corpus := &rawCorpus{}
	for i, r := range reviews {
		seq := make([]int32, len(tokenized[i]))
		for j, w := range tokenized[i] {
			seq[j] = ranks[w]
		}

		split := &corpus.test
		if r.train {
			split = &corpus.train
		}
		split.Sequences = append(split.Sequences, seq)
		split.Labels = append(split.Labels, r.label)
	}

	return corpus
}

// buildWordIndex assigns each word its frequency rank, 1-based.
func buildWordIndex(counts map[string]int) map[string]int32 {
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}

	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	ranks := make(map[string]int32, len(words))
	for i, w := range words {
		ranks[w] = int32(i + 1)
	}
	return ranks
}
