package asm

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"github.com/gogpu/spvlower/ir"
)

var sirParser = participle.MustBuild[File](
	participle.Lexer(sirLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// Parse parses textual module source into an IR module. The path is used
// only for error positions.
func Parse(path, source string) (*ir.Module, error) {
	file, err := sirParser.ParseString(path, source)
	if err != nil {
		return nil, err
	}
	return build(file)
}

// ParseFile reads and parses a .sir file.
func ParseFile(path string) (*ir.Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(path, string(source))
}

// ReportParseError prints a friendly caret-style parse error message.
func ReportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("Syntax error at line %d, column %d:", pos.Line, pos.Column)
	fmt.Fprintln(os.Stderr, line)
	color.Yellow(caret)
	fmt.Fprintln(os.Stderr, pe.Message())
}
