// Package chunker splits parsed sections into overlapping fixed-size
// passages using a sliding window.
package chunker

import (
	"fmt"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driven"
)

// DefaultSize is the default window size in characters.
const DefaultSize = 2000

// DefaultStep is the default step between consecutive windows.
// A step smaller than the size produces overlap, so a disclosure
// sentence is never severed at every boundary that covers it.
const DefaultStep = 1000

// Ensure Chunker implements the port.
var _ driven.SectionChunker = (*Chunker)(nil)

// Chunker splits section content into fixed-size overlapping chunks.
type Chunker struct {
	size int
	step int
}

// New creates a chunker. Non-positive size or step is a caller error.
func New(size, step int) (*Chunker, error) {
	if size <= 0 || step <= 0 {
		return nil, fmt.Errorf("%w: size=%d step=%d", domain.ErrInvalidChunkParams, size, step)
	}
	return &Chunker{size: size, step: step}, nil
}

// Split chunks each section independently. A section that fits in one
// window becomes a single chunk at offset 0; larger sections are cut
// into windows advancing by step, the final window clipped to the tail.
// Every character of every section is covered by at least one chunk,
// and chunk order is stable (ascending offsets, document order).
func (c *Chunker) Split(sections []domain.Section) []domain.Chunk {
	var chunks []domain.Chunk
	position := 0

	for _, sec := range sections {
		content := sec.Content
		if content == "" {
			continue
		}

		if len(content) <= c.size {
			chunks = append(chunks, domain.Chunk{
				SectionTitle: sec.Title,
				Content:      content,
				StartOffset:  0,
				Position:     position,
			})
			position++
			continue
		}

		for start := 0; start < len(content); start += c.step {
			end := start + c.size
			if end > len(content) {
				end = len(content)
			}
			chunks = append(chunks, domain.Chunk{
				SectionTitle: sec.Title,
				Content:      content[start:end],
				StartOffset:  start,
				Position:     position,
			})
			position++
			// The window that extended past the end of the section is
			// the last one. A window landing exactly on the end does
			// not stop the loop: the next (clipped) window still starts
			// within the section.
			if start+c.size > len(content) {
				break
			}
		}
	}

	return chunks
}
