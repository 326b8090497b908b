package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coffersTech/tagquery/internal/pkg/tagql"
)

var showAST bool

var compileCmd = &cobra.Command{
	Use:   "compile [expression]",
	Short: "Compile an expression and print the filter as JSON",
	Args:  cobra.ArbitraryArgs,
	RunE:  runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVar(&showAST, "ast", false, "dump the reduced syntax tree to stderr")
}

func runCompile(cmd *cobra.Command, args []string) error {
	expression := strings.Join(args, " ")

	ast, err := tagql.Parse(expression)
	if err != nil {
		return err
	}
	ast, err = tagql.Reduce(ast)
	if err != nil {
		return err
	}
	if showAST {
		fmt.Fprintln(os.Stderr, ast.String())
	}

	filter, err := tagql.Emit(ast, field)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(filter, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
