package convert

// SplitText slices text into consecutive chunks of at most size characters
// (runes). Boundaries ignore words and sentences; the last chunk takes the
// remainder. A non-positive size means DefaultMaxChunkSize.
func SplitText(text string, size int) []string {
	if size <= 0 {
		size = DefaultMaxChunkSize
	}
	if text == "" {
		return nil
	}

	var chunks []string
	start, n := 0, 0
	for i := range text {
		if n == size {
			chunks = append(chunks, text[start:i])
			start, n = i, 0
		}
		n++
	}
	return append(chunks, text[start:])
}
