package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coffersTech/tagquery/internal/engine"
	"github.com/coffersTech/tagquery/internal/pkg/tagql"
	"github.com/coffersTech/tagquery/internal/storage"
)

var docsPath string

var matchCmd = &cobra.Command{
	Use:   "match [expression]",
	Short: "Print the documents from a file that match an expression",
	Long: `Compiles the expression and evaluates the resulting filter
against every document in the given file. The file must hold a JSON
array of documents; a .zst suffix means zstd-compressed.`,
	Args: cobra.ArbitraryArgs,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVar(&docsPath, "docs", "", "path to the document file (required)")
	matchCmd.MarkFlagRequired("docs")
}

func runMatch(cmd *cobra.Command, args []string) error {
	expression := strings.Join(args, " ")

	filter, err := tagql.Compile(expression, field)
	if err != nil {
		return err
	}

	reader, err := storage.NewDocumentReader()
	if err != nil {
		return err
	}
	defer reader.Close()

	docs, err := reader.Read(docsPath)
	if err != nil {
		return err
	}

	matched := 0
	for _, doc := range docs {
		if engine.Matches(filter, doc) {
			fmt.Println(doc.String())
			matched++
		}
	}

	log.Printf("Matched %d of %d documents", matched, len(docs))
	return nil
}
