package chunker

// Split slices each input text into contiguous, non-overlapping fragments of
// at most chunkSize characters (runes), preserving order within and across
// inputs. The last fragment of a text may be shorter than chunkSize. No
// normalization is applied; boundaries are purely positional.
// This is a simple character-based splitter. Ideally, use a tokenizer-aware splitter.
func Split(texts []string, chunkSize int) []string {
	var chunks []string
	for _, text := range texts {
		chunks = append(chunks, splitOne(text, chunkSize)...)
	}
	return chunks
}

func splitOne(text string, chunkSize int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if chunkSize <= 0 || len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	for i := 0; i < len(runes); i += chunkSize {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
