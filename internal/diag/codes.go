package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical (embedded expressions)
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005

	// Syntax (embedded expressions)
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectExpression   Code = 2002
	SynUnclosedDelimiter  Code = 2003
	SynExpectType         Code = 2004
	SynExpectPattern      Code = 2005
	SynChainedComparison  Code = 2006
	SynTrailingInput      Code = 2007
	SynExpectBlock        Code = 2008
	SynExpectIdentifier   Code = 2009
	SynItemNotSupported   Code = 2010
	SynStatementForm      Code = 2100
	SynInvalidExpression  Code = 2101

	// Schema (loader + validation pipeline)
	SchemaInfo              Code = 3000
	SchemaParseFailure      Code = 3001
	SchemaInvalidIdentifier Code = 3002
	SchemaValidationFailure Code = 3003

	// Symbol mangling
	MangleInfo      Code = 4000
	MangleCollision Code = 4001

	// Stable identity / alias graph
	IdentityInfo           Code = 5000
	IdentityAliasCycle     Code = 5001
	IdentityAliasAmbiguous Code = 5002
	IdentityAliasInvalid   Code = 5003

	// I/O and observability
	IOReadFailure Code = 6001
	ObsTimings    Code = 6100
)

var (
	// codeIDs holds the stable machine-readable form of every code.
	// Existing entries must never change.
	codeIDs = map[Code]string{
		UnknownCode:                 "unknown",
		LexInfo:                     "lex.info",
		LexUnknownChar:              "lex.unknown_char",
		LexUnterminatedString:       "lex.unterminated_string",
		LexUnterminatedBlockComment: "lex.unterminated_block_comment",
		LexBadNumber:                "lex.bad_number",
		LexUnterminatedChar:         "lex.unterminated_char",
		SynInfo:                     "syntax.info",
		SynUnexpectedToken:          "syntax.unexpected_token",
		SynExpectExpression:         "syntax.expected_expression",
		SynUnclosedDelimiter:        "syntax.unclosed_delimiter",
		SynExpectType:               "syntax.expected_type",
		SynExpectPattern:            "syntax.expected_pattern",
		SynChainedComparison:        "syntax.chained_comparison",
		SynTrailingInput:            "syntax.trailing_input",
		SynExpectBlock:              "syntax.expected_block",
		SynExpectIdentifier:         "syntax.expected_identifier",
		SynItemNotSupported:         "syntax.item_not_supported",
		SynStatementForm:            "expr.statement_form",
		SynInvalidExpression:        "expr.invalid_syntax",
		SchemaInfo:                  "schema.info",
		SchemaParseFailure:          "schema.parse_failure",
		SchemaInvalidIdentifier:     "schema.invalid_identifier",
		SchemaValidationFailure:     "schema.validation_failure",
		MangleInfo:                  "mangle.info",
		MangleCollision:             "mangle.collision",
		IdentityInfo:                "identity.info",
		IdentityAliasCycle:          "identity.alias_cycle",
		IdentityAliasAmbiguous:      "identity.alias_ambiguous",
		IdentityAliasInvalid:        "identity.alias_invalid",
		IOReadFailure:               "io.read_failure",
		ObsTimings:                  "obs.timings",
	}

	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Malformed numeric literal",
		LexUnterminatedChar:         "Unterminated character literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectExpression:         "Expected expression",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynExpectType:               "Expected type",
		SynExpectPattern:            "Expected pattern",
		SynChainedComparison:        "Comparison operators cannot be chained",
		SynTrailingInput:            "Unexpected input after expression",
		SynExpectBlock:              "Expected block",
		SynExpectIdentifier:         "Expected identifier",
		SynItemNotSupported:         "Item declarations are not supported in expressions",
		SynStatementForm:            "Statement-like form where an expression is required",
		SynInvalidExpression:        "Invalid expression syntax",
		SchemaInfo:                  "Schema information",
		SchemaParseFailure:          "Theorem document could not be parsed",
		SchemaInvalidIdentifier:     "Invalid identifier",
		SchemaValidationFailure:     "Theorem document failed validation",
		MangleInfo:                  "Mangling information",
		MangleCollision:             "Generated symbol collision",
		IdentityInfo:                "Identity information",
		IdentityAliasCycle:          "Alias graph contains a cycle",
		IdentityAliasAmbiguous:      "Alias graph resolves an identity ambiguously",
		IdentityAliasInvalid:        "Alias graph entry is malformed",
		IOReadFailure:               "I/O read error",
		ObsTimings:                  "Pipeline timings",
	}
)

// ID returns the stable dotted identifier, e.g. "schema.parse_failure".
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return fmt.Sprintf("unknown.%04d", int(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode maps a stable identifier back to its Code.
func ParseCode(id string) (Code, bool) {
	for c, s := range codeIDs {
		if s == id {
			return c, true
		}
	}
	return UnknownCode, false
}
