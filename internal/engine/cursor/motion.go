package cursor

// Text is the read access motions need.
type Text interface {
	Len() int
	LineCount() int
	LineOf(offset int) int
	LineStartOffset(line int) int
	LineEndOffset(line int) int
}

// Motion computes a target offset for a head position.
type Motion func(t Text, head int) int

// Left moves one character back.
func Left(t Text, head int) int { return max(head-1, 0) }

// Right moves one character forward.
func Right(t Text, head int) int { return min(head+1, t.Len()) }

// Up moves to the same column on the previous line, clamped to its length.
func Up(t Text, head int) int { return vertical(t, head, -1) }

// Down moves to the same column on the next line, clamped to its length.
func Down(t Text, head int) int { return vertical(t, head, 1) }

// Start moves to the start of the buffer.
func Start(Text, int) int { return 0 }

// End moves to the end of the buffer.
func End(t Text, _ int) int { return t.Len() }

// LineStart moves to the start of the head's line.
func LineStart(t Text, head int) int {
	return t.LineStartOffset(t.LineOf(head))
}

// LineEnd moves to the end of the head's line (its newline, or the buffer end).
func LineEnd(t Text, head int) int {
	return t.LineEndOffset(t.LineOf(head))
}

func vertical(t Text, head, dir int) int {
	line := t.LineOf(head)
	target := line + dir
	if target < 0 || target >= t.LineCount() {
		return head
	}
	col := head - t.LineStartOffset(line)
	start := t.LineStartOffset(target)
	return start + min(col, t.LineEndOffset(target)-start)
}

// Move translates the whole selection by the distance the motion moves
// its head. The translation is limited so neither end leaves [0, Len],
// which keeps the selection's width.
func Move(s Selection, t Text, m Motion) Selection {
	head := s.Head()
	delta := m(t, head) - head
	delta = max(delta, -s.Min())
	delta = min(delta, t.Len()-s.Max())
	s.Start += delta
	s.End += delta
	return s
}

// Extend moves only the head.
func Extend(s Selection, t Text, m Motion) Selection {
	return s.WithHead(m(t, s.Head()))
}

// Goto moves the head to the motion's target and collapses the anchor
// onto it.
func Goto(s Selection, t Text, m Motion) Selection {
	target := m(t, s.Head())
	s.Start, s.End = target, target
	return s
}

// ToLines grows the selection to cover whole lines, from the start of
// the line holding Min to the end of the line holding Max. The result is
// forward.
func ToLines(s Selection, t Text) Selection {
	return Selection{
		Start:     t.LineStartOffset(t.LineOf(s.Min())),
		End:       t.LineEndOffset(t.LineOf(s.Max())),
		Direction: Forward,
	}
}
