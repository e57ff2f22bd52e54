package pointlist

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// pointLexer tokenizes "x1,y1; x2,y2; ...". A run of separators (with any
// whitespace between them) is a single Sep token, so empty segments vanish
// at the lexer level.
var pointLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Sep", Pattern: `;[\s;]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
})

// pointList is the grammar root. Leading and trailing separators are allowed.
type pointList struct {
	Points []*pointNode `parser:"Sep? ( @@ ( Sep @@ )* Sep? )?"`
}

type pointNode struct {
	X float64 `parser:"@Number Comma"`
	Y float64 `parser:"@Number"`
}
