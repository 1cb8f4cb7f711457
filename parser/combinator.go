package parser

import (
	"slices"

	pc "github.com/shibukawa/parsercombinator"
	tok "github.com/shibukawa/tyfmt/tokenizer"
)

// Token-level patterns used for lookahead. They only recognize a shape; the
// recursive-descent parser still builds the nodes so comments keep their place.
var (
	// comment parses block or line comments.
	comment = primitiveType("comment", tok.LINE_COMMENT, tok.BLOCK_COMMENT)
	// identifier parses an identifier.
	identifier = primitiveType("identifier", tok.IDENTIFIER)
	// letKeyword parses the let keyword.
	letKeyword = primitiveType("let", tok.LET)
	// colon parses a colon.
	colon = primitiveType("colon", tok.COLON)
	// parenClose parses a closing parenthesis.
	parenClose = primitiveType("parenClose", tok.CLOSED_PARENS)

	// sp consumes zero or more comment tokens.
	sp = pc.Drop(pc.ZeroOrMore("comment", comment))

	// letHeader matches `let name`
	letHeader = pc.Seq(letKeyword, sp, identifier)
	// namedHeader matches `name:` inside arguments and dictionaries
	namedHeader = pc.Seq(identifier, sp, colon)
	// emptyDict matches the `:)` tail of `(:)`
	emptyDict = pc.Seq(colon, sp, parenClose)
)

func primitiveType(typeName string, types ...tok.TokenType) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func toParserToken(tokens []tok.Token) []pc.Token[tok.Token] {
	results := make([]pc.Token[tok.Token], len(tokens))

	for i, token := range tokens {
		results[i] = pc.Token[tok.Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: token,
			Raw: token.Value,
		}
	}

	return results
}
