package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-endbasic/endbasic/internal/lexer"
	"github.com/go-endbasic/endbasic/internal/token"
)

var (
	lexEvalExpr string
	showPos     bool
	showType    bool
	onlyErrors  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an EndBASIC file or expression",
	Long: `Tokenize (lex) an EndBASIC program and print the resulting tokens.
Useful for debugging the lexer and understanding how source is scanned.

Examples:
  endbasic lex hello.bas
  endbasic lex -e 'PRINT 1 + 2'
  endbasic lex --show-type --show-pos hello.bas`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	var source string

	switch {
	case lexEvalExpr != "":
		source = lexEvalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	l := lexer.New(source)
	errCount := 0
	for {
		tok := l.NextToken()
		if onlyErrors && tok.Type != token.ILLEGAL {
			if tok.Type == token.EOF {
				break
			}
			continue
		}
		if tok.Type == token.ILLEGAL {
			errCount++
		}
		printToken(tok)
		if tok.Type == token.EOF {
			break
		}
	}

	if onlyErrors && errCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errCount)
	}
	return nil
}

func printToken(tok token.Token) {
	var out string
	if showType {
		out = fmt.Sprintf("[%-12s]", tok.Type)
	}
	switch {
	case tok.Type == token.EOF:
		out += " EOF"
	case tok.Type == token.ILLEGAL:
		out += fmt.Sprintf(" ILLEGAL: %q", tok.Literal)
	case tok.Literal == "":
		out += fmt.Sprintf(" %s", tok.Type)
	default:
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		out += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(out)
}
