package lexer_test

import (
	"testing"

	"github.com/linkpy/neolang/internal/lexer"
	"github.com/linkpy/neolang/internal/source"
)

func makeCursor(t *testing.T, content string) lexer.Cursor {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.AddVirtual("c.nl", []byte(content))
	if err != nil {
		t.Fatal(err)
	}
	return lexer.NewCursor(fs.Get(id))
}

func TestCursorPeekAndBump(t *testing.T) {
	c := makeCursor(t, "ab")
	if b, ok := c.Peek(0); !ok || b != 'a' {
		t.Errorf("Peek(0) = %c %v", b, ok)
	}
	if b, ok := c.Peek(1); !ok || b != 'b' {
		t.Errorf("Peek(1) = %c %v", b, ok)
	}
	if _, ok := c.Peek(2); ok {
		t.Error("Peek past EOF must fail")
	}
	if got := c.Bump(); got != 'a' {
		t.Errorf("Bump = %c", got)
	}
	if got := c.Bump(); got != 'b' {
		t.Errorf("Bump = %c", got)
	}
	if !c.EOF() {
		t.Error("should be at EOF")
	}
	// продвижение за EOF — no-op
	if got := c.Bump(); got != 0 {
		t.Errorf("Bump past EOF = %d", got)
	}
	c.Advance(10)
	if c.Off != 2 {
		t.Errorf("Advance past EOF moved cursor to %d", c.Off)
	}
}

func TestCursorLineColumn(t *testing.T) {
	c := makeCursor(t, "a\r\nb")
	c.Bump() // 'a'
	if c.Line != 0 || c.Col != 1 {
		t.Errorf("after 'a': %d:%d", c.Line, c.Col)
	}
	c.Bump() // '\r' — пробел, не перевод строки
	if c.Line != 0 || c.Col != 2 {
		t.Errorf("after CR: %d:%d", c.Line, c.Col)
	}
	c.Bump() // '\n'
	if c.Line != 1 || c.Col != 0 {
		t.Errorf("after LF: %d:%d", c.Line, c.Col)
	}
	c.Bump() // 'b'
	if c.Line != 1 || c.Col != 1 {
		t.Errorf("after 'b': %d:%d", c.Line, c.Col)
	}
}

func TestCursorMarkAndSlice(t *testing.T) {
	c := makeCursor(t, "hello world")
	m := c.Mark()
	c.Advance(5)
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 5 {
		t.Errorf("span: %v", sp)
	}
	if got := string(c.SliceFrom(m)); got != "hello" {
		t.Errorf("slice: %q", got)
	}
}

func TestCursorEat(t *testing.T) {
	c := makeCursor(t, "+-")
	if !c.Eat('+') {
		t.Error("Eat('+')")
	}
	if c.Eat('+') {
		t.Error("Eat must not consume a mismatch")
	}
	if !c.Eat('-') {
		t.Error("Eat('-')")
	}
}
