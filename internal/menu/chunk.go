package menu

// DefaultChunkSize bounds the per-request payload handed to the completion
// backend and keeps a malformed response localized to its own chunk.
const DefaultChunkSize = 2000

// SplitChunks slices text into contiguous, non-overlapping chunks of at most
// size runes, in original order. Concatenating the chunks reproduces the
// input exactly.
func SplitChunks(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if text == "" {
		return nil
	}
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
