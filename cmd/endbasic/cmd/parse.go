package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-endbasic/endbasic/internal/ast"
	"github.com/go-endbasic/endbasic/internal/lexer"
	"github.com/go-endbasic/endbasic/internal/parser"
)

var (
	parseExpression bool
	parseDumpAST    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse EndBASIC source and print its AST",
	Long: `Parse EndBASIC source code and print its Abstract Syntax Tree.

If no file is provided, reads from stdin. Use -e to parse program text
given as the command-line argument, and --dump-ast for a structured dump
instead of the source-reconstructing default.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse program text given on the command line")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(_ *cobra.Command, args []string) error {
	var source string

	switch {
	case parseExpression:
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		source = args[0]
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		source = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		source = string(data)
	}

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Parse errors:")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", e.Pos, e.Message)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if parseDumpAST {
		fmt.Println("Abstract Syntax Tree:")
		fmt.Println("=====================")
		for _, stmt := range program.Statements {
			dumpASTNode(stmt, 0)
		}
	} else {
		fmt.Print(program.String())
	}
	return nil
}

func dumpASTNode(node ast.Node, indent int) {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	switch n := node.(type) {
	case *ast.IfStmt:
		fmt.Printf("%sIfStmt (%d branches)\n", prefix, len(n.Branches))
		for _, b := range n.Branches {
			if b.Guard != nil {
				fmt.Printf("%s  Guard: %s\n", prefix, b.Guard.String())
			} else {
				fmt.Printf("%s  Else:\n", prefix)
			}
			for _, s := range b.Body {
				dumpASTNode(s, indent+2)
			}
		}
	case *ast.WhileStmt:
		fmt.Printf("%sWhileStmt: %s\n", prefix, n.Guard.String())
		for _, s := range n.Body {
			dumpASTNode(s, indent+1)
		}
	case *ast.ForStmt:
		fmt.Printf("%sForStmt: %s = %s TO %s\n", prefix, n.Control.String(), n.Start.String(), n.End.String())
		for _, s := range n.Body {
			dumpASTNode(s, indent+1)
		}
	case *ast.AssignStmt:
		fmt.Printf("%sAssignStmt: %s\n", prefix, n.String())
	case *ast.CallStmt:
		fmt.Printf("%sCallStmt: %s\n", prefix, n.String())
	case *ast.DimStmt:
		fmt.Printf("%sDimStmt: %s\n", prefix, n.String())
	default:
		fmt.Printf("%s%T: %s\n", prefix, node, node.String())
	}
}
