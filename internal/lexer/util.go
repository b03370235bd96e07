package lexer

import "github.com/linkpy/neolang/internal/source"

func spanAt(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

// ===== Классификаторы =====

// NL sources are ASCII; anything outside the accepted prefixes is
// unrecognized input.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// ===== Матчеры последовательностей операторов (жадность) =====

// try2 пробует "съесть" 2 байта, если совпадает.
func (lx *Lexer) try2(a, b byte) bool {
	b0, ok0 := lx.cursor.Peek(0)
	b1, ok1 := lx.cursor.Peek(1)
	if !ok0 || !ok1 || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}
