// internal/surface/buffer.go
package surface

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/arlem/hardkey/internal/keyev"
	"github.com/arlem/hardkey/internal/types"
)

const (
	defaultPageSize = 10
	maxUndoDepth    = 200
)

// Buffer is a line-based TextSurface with cursor, selection, a single-level
// per-edit undo history, and a log of forwarded synthetic keys. Columns are
// byte offsets, always kept on grapheme cluster boundaries.
type Buffer struct {
	lines  []string
	cursor types.Position
	anchor *types.Position // Selection anchor; nil when no selection

	clip      *Clipboard
	synthetic []SyntheticKey
	undo      []bufferState
	pageSize  int
}

type bufferState struct {
	lines  []string
	cursor types.Position
}

// NewBuffer creates an empty buffer writing through the given clipboard.
func NewBuffer(clip *Clipboard) *Buffer {
	if clip == nil {
		clip = NewClipboard(false)
	}
	return &Buffer{
		lines:    []string{""},
		clip:     clip,
		pageSize: defaultPageSize,
	}
}

// --- TextSurface implementation ---

// InsertText commits text at the cursor, replacing any selection.
func (b *Buffer) InsertText(text string) {
	if text == "" {
		return
	}
	b.pushUndo()
	if b.hasSelectionLocked() {
		b.removeSelection()
	}
	b.insertRaw(text)
}

// DeleteBefore removes count grapheme clusters before the cursor.
func (b *Buffer) DeleteBefore(count int) {
	if count <= 0 {
		return
	}
	b.pushUndo()
	b.anchor = nil
	b.deleteBeforeRaw(count)
}

// ReplaceBefore substitutes the count clusters before the cursor with text
// as a single edit: one undo record, no intermediate state.
func (b *Buffer) ReplaceBefore(count int, text string) {
	b.pushUndo()
	b.anchor = nil
	b.deleteBeforeRaw(count)
	b.insertRaw(text)
}

// DeleteSelection removes the selection, if any.
func (b *Buffer) DeleteSelection() bool {
	if !b.hasSelectionLocked() {
		return false
	}
	b.pushUndo()
	b.removeSelection()
	return true
}

// MoveCursor moves the cursor and clears any selection.
func (b *Buffer) MoveCursor(dir types.Direction) {
	b.anchor = nil
	b.moveCursor(dir)
}

// ExtendSelection anchors a selection at the cursor if none exists, then
// moves the cursor.
func (b *Buffer) ExtendSelection(dir types.Direction) {
	if b.anchor == nil {
		a := b.cursor
		b.anchor = &a
	}
	b.moveCursor(dir)
	// A selection collapsed back onto its anchor is no selection.
	if *b.anchor == b.cursor {
		b.anchor = nil
	}
}

// PerformNamedAction executes a whole editing command.
func (b *Buffer) PerformNamedAction(action types.NamedAction) {
	switch action {
	case types.ActionCopy:
		if start, end, ok := b.selectionRange(); ok {
			b.clip.Write(b.extractRange(start, end))
			b.anchor = nil
		}
	case types.ActionCut:
		if start, end, ok := b.selectionRange(); ok {
			b.clip.Write(b.extractRange(start, end))
			b.pushUndo()
			b.removeSelection()
		}
	case types.ActionPaste:
		if text := b.clip.Read(); text != "" {
			b.InsertText(text)
		}
	case types.ActionUndo:
		b.popUndo()
	case types.ActionSelectAll:
		if b.Text() == "" {
			return
		}
		b.anchor = &types.Position{Line: 0, Col: 0}
		last := len(b.lines) - 1
		b.cursor = types.Position{Line: last, Col: len(b.lines[last])}
	}
}

// SendSyntheticKey records a forwarded key transition for the host.
func (b *Buffer) SendSyntheticKey(code keyev.Code, down bool) {
	b.synthetic = append(b.synthetic, SyntheticKey{Code: code, Down: down})
}

// HasSelection reports whether a selection exists.
func (b *Buffer) HasSelection() bool {
	return b.hasSelectionLocked()
}

// TextBeforeCursor returns up to n grapheme clusters before the cursor.
func (b *Buffer) TextBeforeCursor(n int) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < b.cursor.Line; i++ {
		sb.WriteString(b.lines[i])
		sb.WriteByte('\n')
	}
	sb.WriteString(b.lines[b.cursor.Line][:b.cursor.Col])
	return takeLastClusters(sb.String(), n)
}

// --- Accessors for the harness and tests ---

// Text returns the whole buffer content.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns the buffer's lines.
func (b *Buffer) Lines() []string {
	return b.lines
}

// CursorPos returns the cursor position.
func (b *Buffer) CursorPos() types.Position {
	return b.cursor
}

// SyntheticKeys returns the log of forwarded synthetic key transitions.
func (b *Buffer) SyntheticKeys() []SyntheticKey {
	return b.synthetic
}

// ClearSyntheticKeys resets the synthetic key log.
func (b *Buffer) ClearSyntheticKeys() {
	b.synthetic = nil
}

// --- Internals ---

func (b *Buffer) hasSelectionLocked() bool {
	return b.anchor != nil && *b.anchor != b.cursor
}

// selectionRange returns the selection endpoints in document order.
func (b *Buffer) selectionRange() (start, end types.Position, ok bool) {
	if !b.hasSelectionLocked() {
		return types.Position{}, types.Position{}, false
	}
	if b.anchor.Before(b.cursor) {
		return *b.anchor, b.cursor, true
	}
	return b.cursor, *b.anchor, true
}

// insertRaw splices text at the cursor without touching undo or selection.
func (b *Buffer) insertRaw(text string) {
	line := b.lines[b.cursor.Line]
	before := line[:b.cursor.Col]
	after := line[b.cursor.Col:]

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.lines[b.cursor.Line] = before + text + after
		b.cursor.Col += len(text)
		return
	}

	newLines := make([]string, 0, len(b.lines)+len(parts)-1)
	newLines = append(newLines, b.lines[:b.cursor.Line]...)
	newLines = append(newLines, before+parts[0])
	newLines = append(newLines, parts[1:len(parts)-1]...)
	lastPart := parts[len(parts)-1]
	newLines = append(newLines, lastPart+after)
	newLines = append(newLines, b.lines[b.cursor.Line+1:]...)

	b.lines = newLines
	b.cursor.Line += len(parts) - 1
	b.cursor.Col = len(lastPart)
}

// deleteBeforeRaw removes up to count clusters before the cursor without
// touching undo. A line boundary counts as one cluster.
func (b *Buffer) deleteBeforeRaw(count int) {
	for i := 0; i < count; i++ {
		if b.cursor.Col > 0 {
			line := b.lines[b.cursor.Line]
			start := lastClusterStart(line[:b.cursor.Col])
			b.lines[b.cursor.Line] = line[:start] + line[b.cursor.Col:]
			b.cursor.Col = start
		} else if b.cursor.Line > 0 {
			prev := b.lines[b.cursor.Line-1]
			cur := b.lines[b.cursor.Line]
			b.lines = append(b.lines[:b.cursor.Line-1],
				append([]string{prev + cur}, b.lines[b.cursor.Line+1:]...)...)
			b.cursor.Line--
			b.cursor.Col = len(prev)
		} else {
			return
		}
	}
}

// removeSelection deletes the selected range and collapses the cursor to
// its start.
func (b *Buffer) removeSelection() {
	start, end, ok := b.selectionRange()
	if !ok {
		return
	}
	if start.Line == end.Line {
		line := b.lines[start.Line]
		b.lines[start.Line] = line[:start.Col] + line[end.Col:]
	} else {
		head := b.lines[start.Line][:start.Col]
		tail := b.lines[end.Line][end.Col:]
		b.lines = append(b.lines[:start.Line],
			append([]string{head + tail}, b.lines[end.Line+1:]...)...)
	}
	b.cursor = start
	b.anchor = nil
}

// extractRange returns the text between start and end.
func (b *Buffer) extractRange(start, end types.Position) string {
	if start.Line == end.Line {
		return b.lines[start.Line][start.Col:end.Col]
	}
	var sb strings.Builder
	sb.WriteString(b.lines[start.Line][start.Col:])
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[i])
	}
	sb.WriteByte('\n')
	sb.WriteString(b.lines[end.Line][:end.Col])
	return sb.String()
}

func (b *Buffer) moveCursor(dir types.Direction) {
	switch dir {
	case types.DirLeft:
		if b.cursor.Col > 0 {
			b.cursor.Col = lastClusterStart(b.lines[b.cursor.Line][:b.cursor.Col])
		} else if b.cursor.Line > 0 {
			b.cursor.Line--
			b.cursor.Col = len(b.lines[b.cursor.Line])
		}
	case types.DirRight:
		line := b.lines[b.cursor.Line]
		if b.cursor.Col < len(line) {
			b.cursor.Col += firstClusterLen(line[b.cursor.Col:])
		} else if b.cursor.Line < len(b.lines)-1 {
			b.cursor.Line++
			b.cursor.Col = 0
		}
	case types.DirUp:
		b.moveLines(-1)
	case types.DirDown:
		b.moveLines(1)
	case types.DirPageUp:
		b.moveLines(-b.pageSize)
	case types.DirPageDown:
		b.moveLines(b.pageSize)
	case types.DirHome:
		b.cursor.Col = 0
	case types.DirEnd:
		b.cursor.Col = len(b.lines[b.cursor.Line])
	}
}

func (b *Buffer) moveLines(delta int) {
	b.cursor.Line += delta
	if b.cursor.Line < 0 {
		b.cursor.Line = 0
	}
	if b.cursor.Line > len(b.lines)-1 {
		b.cursor.Line = len(b.lines) - 1
	}
	b.cursor.Col = snapToBoundary(b.lines[b.cursor.Line], b.cursor.Col)
}

func (b *Buffer) pushUndo() {
	linesCopy := make([]string, len(b.lines))
	copy(linesCopy, b.lines)
	b.undo = append(b.undo, bufferState{lines: linesCopy, cursor: b.cursor})
	if len(b.undo) > maxUndoDepth {
		b.undo = b.undo[1:]
	}
}

func (b *Buffer) popUndo() {
	if len(b.undo) == 0 {
		return
	}
	state := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.lines = state.lines
	b.cursor = state.cursor
	b.anchor = nil
}

// --- Grapheme helpers ---

// lastClusterStart returns the byte offset where the final grapheme cluster
// of s begins.
func lastClusterStart(s string) int {
	start := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		start, _ = g.Positions()
	}
	return start
}

// firstClusterLen returns the byte length of the first grapheme cluster.
func firstClusterLen(s string) int {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return len(cluster)
}

// snapToBoundary clamps col into the line and pulls it back onto a cluster
// boundary.
func snapToBoundary(line string, col int) int {
	if col >= len(line) {
		return len(line)
	}
	boundary := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		start, _ := g.Positions()
		if start > col {
			return boundary
		}
		boundary = start
	}
	return boundary
}

// takeLastClusters returns the suffix of s containing at most n clusters.
func takeLastClusters(s string, n int) string {
	count := uniseg.GraphemeClusterCount(s)
	if count <= n {
		return s
	}
	skip := count - n
	g := uniseg.NewGraphemes(s)
	for i := 0; i < skip && g.Next(); i++ {
	}
	_, end := g.Positions()
	return s[end:]
}
