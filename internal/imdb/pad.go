package imdb

// Pad produces a fixed-width copy of the sequences.
//
// Sequences shorter than maxLen are pre-padded with zeros; sequences longer
// than maxLen are pre-truncated, keeping the last maxLen tokens. Every
// returned row is exactly maxLen wide.
func Pad(sequences [][]int32, maxLen int) [][]int32 {
	padded := make([][]int32, len(sequences))
	for i, seq := range sequences {
		row := make([]int32, maxLen)
		if len(seq) >= maxLen {
			copy(row, seq[len(seq)-maxLen:])
		} else {
			copy(row[maxLen-len(seq):], seq)
		}
		padded[i] = row
	}
	return padded
}
