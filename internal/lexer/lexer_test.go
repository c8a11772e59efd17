package lexer

import "testing"

func collectTypes(src string) []TokenType {
	l := New("t.shiro", src)
	var out []TokenType
	for {
		tok := l.Next()
		out = append(out, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	return out
}

func TestLexerKeywordsAndPunctuation(t *testing.T) {
	src := "fn add(a: i32, b: i32) -> i32 { return a + b; }"
	got := collectTypes(src)
	want := []TokenType{
		FN, IDENT, LPAREN, IDENT, COLON, I32, COMMA, IDENT, COLON, I32, RPAREN,
		ARROW, I32, LBRACE, RETURN, IDENT, PLUS, IDENT, SEMI, RBRACE, EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexerIntegerSuffix(t *testing.T) {
	l := New("t.shiro", "256u8")
	tok := l.Next()
	if tok.Type != INT || tok.Literal != "256" || tok.Suffix != "u8" {
		t.Fatalf("got %+v", tok)
	}
}

func TestLexerLeadingZeroIsMalformed(t *testing.T) {
	l := New("t.shiro", "08")
	l.Next()
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lexer error for leading-zero literal")
	}
}

func TestLexerSpeculativeRollback(t *testing.T) {
	l := New("t.shiro", "Foo<T>(1)")
	first := l.Next() // Foo
	if first.Type != IDENT {
		t.Fatalf("expected IDENT, got %s", first.Type)
	}
	l.EnterSpeculativeMode()
	lt := l.Next()
	if lt.Type != LT {
		t.Fatalf("expected LT, got %s", lt.Type)
	}
	ident := l.Next()
	if ident.Type != IDENT {
		t.Fatalf("expected IDENT, got %s", ident.Type)
	}
	l.RollbackSpeculation()

	// After rollback, the next token must be '<' again.
	again := l.Next()
	if again.Type != LT {
		t.Fatalf("expected LT after rollback, got %s", again.Type)
	}
}

func TestLexerSpeculativeCommit(t *testing.T) {
	l := New("t.shiro", "a < b")
	l.Next() // a
	l.EnterSpeculativeMode()
	lt := l.Next()
	if lt.Type != LT {
		t.Fatalf("expected LT, got %s", lt.Type)
	}
	l.CommitSpeculation()
	next := l.Next()
	if next.Type != IDENT || next.Literal != "b" {
		t.Fatalf("expected ident 'b', got %+v", next)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New("t.shiro", "a b c")
	p0 := l.Peek(0)
	p1 := l.Peek(1)
	if p0.Literal != "a" || p1.Literal != "b" {
		t.Fatalf("peek mismatch: %+v %+v", p0, p1)
	}
	n := l.Next()
	if n.Literal != "a" {
		t.Fatalf("Next after Peek should still return 'a', got %q", n.Literal)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	l := New("t.shiro", `"hi\n\tthere"`)
	tok := l.Next()
	if tok.Type != STRING || tok.Literal != "hi\n\tthere" {
		t.Fatalf("got %+v", tok)
	}
}

func TestLexerNestedSpeculation(t *testing.T) {
	l := New("t.shiro", "a b c d")
	l.Next() // a
	l.EnterSpeculativeMode()
	l.Next() // b
	l.EnterSpeculativeMode()
	l.Next() // c
	l.CommitSpeculation()   // inner commit: no effect on outer savepoint
	l.RollbackSpeculation() // outer rollback: restore to just after 'a'
	tok := l.Next()
	if tok.Literal != "b" {
		t.Fatalf("expected 'b' after outer rollback, got %q", tok.Literal)
	}
}
