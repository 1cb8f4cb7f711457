package tokenizer

// keywords maps reserved words of code mode to their token types.
// Markup text never produces keywords.
var keywords = map[string]TokenType{
	"let":   LET,
	"and":   AND,
	"or":    OR,
	"not":   NOT,
	"in":    IN,
	"true":  TRUE,
	"false": FALSE,
	"none":  NONE,
}

// LookupKeyword returns the keyword token type for word, or IDENTIFIER
func LookupKeyword(word string) TokenType {
	if tt, ok := keywords[word]; ok {
		return tt
	}

	return IDENTIFIER
}
