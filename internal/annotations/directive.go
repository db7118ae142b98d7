package annotations

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/quickprop/quickprop/internal/errors"
	"github.com/quickprop/quickprop/internal/models"
)

// Directive is one parsed quickprop annotation.
type Directive struct {
	Flavor   models.Flavor         // requested executor variant
	Args     []string              // opaque passthrough tokens, verbatim and ordered
	Raw      string                // the original comment line
	Location errors.SourceLocation // where the directive appears
}

// directiveHead is the participle grammar for the fixed part of a directive,
// i.e. everything before the optional argument list.
type directiveHead struct {
	Comment   string `parser:"@Comment"`
	Marker    string `parser:"@Marker"`
	Separator string `parser:"@Separator"`
	Flavor    string `parser:"@Ident"`
}

// Parser parses quickprop directive comments.
type Parser struct {
	head *participle.Parser[directiveHead]
}

// NewParser creates a new directive parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Marker", Pattern: `quickprop`},
		{Name: "Separator", Pattern: `::`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	head := participle.MustBuild[directiveHead](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
	)

	return &Parser{head: head}
}

// IsDirective reports whether a comment line carries a quickprop directive.
func IsDirective(comment string) bool {
	content := strings.TrimSpace(comment)
	if !strings.HasPrefix(content, "//") {
		return false
	}
	content = strings.TrimSpace(strings.TrimPrefix(content, "//"))
	return strings.HasPrefix(content, "quickprop::")
}

// Parse parses a single directive comment line. The argument list, when
// present, is captured opaquely: tokens are split on top-level commas only
// and re-emitted verbatim downstream, never interpreted here.
func (p *Parser) Parse(comment string, loc errors.SourceLocation) (*Directive, error) {
	raw := comment
	trimmed := strings.TrimSpace(comment)

	head, inner, err := splitHeadAndArgs(trimmed)
	if err != nil {
		return nil, errors.WrapParseError("quickprop directive", err).WithLocation(loc)
	}

	parsed, err := p.head.ParseString("", head)
	if err != nil {
		return nil, errors.WrapParseError("quickprop directive", err).WithLocation(loc)
	}

	flavor := models.Flavor(parsed.Flavor)
	if !flavor.IsValid() {
		return nil, errors.Newf(errors.SyntaxErrorCode,
			"unknown quickprop directive '%s' (expected '%s' or '%s')",
			parsed.Flavor, models.FlavorPool, models.FlavorSingle).
			WithLocation(loc)
	}

	return &Directive{
		Flavor:   flavor,
		Args:     SplitArgs(inner),
		Raw:      raw,
		Location: loc,
	}, nil
}

// splitHeadAndArgs separates the fixed directive head from the optional
// parenthesized argument run. The argument run is returned uninterpreted.
func splitHeadAndArgs(comment string) (head, inner string, err error) {
	open := strings.IndexByte(comment, '(')
	if open < 0 {
		return comment, "", nil
	}

	rest := strings.TrimSpace(comment[open:])
	if !strings.HasSuffix(rest, ")") {
		return "", "", errUnterminatedArgs
	}

	return strings.TrimSpace(comment[:open]), rest[1 : len(rest)-1], nil
}

var errUnterminatedArgs = errors.New(errors.SyntaxErrorCode, "argument list is missing its closing ')'")
