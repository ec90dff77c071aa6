package asm

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var sirLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// String literals (shader names)
		{"String", `"[^"]*"`, nil},

		// Instruction results and operands (%0, %1, ...)
		{"Value", `%[0-9]+`, nil},

		// Keywords and identifiers
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Integer literals
		{"Integer", `[0-9]+`, nil},

		// Punctuation
		{"Punct", `[{}()\[\]:,=<>@]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
