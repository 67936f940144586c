package lexer_test

import (
	"testing"

	"github.com/monsieurbadia/zhoo/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func kinds(src string) []lexer.Kind {
	l := lexer.New(src, 0)
	var out []lexer.Kind
	for {
		tok := l.NextToken()
		out = append(out, tok.Kind)
		if tok.Kind == lexer.EOF {
			return out
		}
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	got := kinds("fun main() {}")
	assert.Equal(t, []lexer.Kind{
		lexer.FUN, lexer.IDENT, lexer.LPAREN, lexer.RPAREN,
		lexer.LBRACE, lexer.RBRACE, lexer.EOF,
	}, got)
}

func TestDeclAssignVsAssign(t *testing.T) {
	got := kinds("val X := 1; val mut i: int = 0;")
	assert.Contains(t, got, lexer.DECLASSIGN)
	assert.Contains(t, got, lexer.ASSIGN)
	assert.Contains(t, got, lexer.COLON)
}

func TestCompoundOperators(t *testing.T) {
	got := kinds("a += 1; a == b; a != b; a <= b; a >= b; a && b; a || b;")
	for _, want := range []lexer.Kind{
		lexer.PLUSEQ, lexer.EQ, lexer.NE, lexer.LE, lexer.GE, lexer.AND, lexer.OR,
	} {
		assert.Contains(t, got, want)
	}
}

func TestStringEscapes(t *testing.T) {
	l := lexer.New(`"hi\n"`, 0)
	tok := l.NextToken()
	assert.Equal(t, lexer.STRING, tok.Kind)
	assert.Equal(t, "hi\n", tok.Text)
}

func TestNumberKinds(t *testing.T) {
	l := lexer.New("42 3.14", 0)
	assert.Equal(t, lexer.INT, l.NextToken().Kind)
	assert.Equal(t, lexer.REAL, l.NextToken().Kind)
}

func TestLineCommentSkipped(t *testing.T) {
	got := kinds("val X := 1; // trailing comment\n")
	assert.NotContains(t, got, lexer.ILLEGAL)
}

func TestSpanOffsetsAreAbsolute(t *testing.T) {
	l := lexer.New("fun", 100)
	tok := l.NextToken()
	assert.Equal(t, uint32(100), tok.Span.Lo)
	assert.Equal(t, uint32(103), tok.Span.Hi)
}
