// internal/types/position.go
package types

// Position represents a cursor or selection endpoint within a text surface.
// Line is the 0-based line index.
// Col is the 0-based byte offset within the line. The surface indexes lines
// by byte offset; anything that needs user-visible character counts goes
// through the grapheme-aware helpers on the surface itself.
type Position struct {
	Line int
	Col  int // Byte offset
}

// Before reports whether p comes before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}
