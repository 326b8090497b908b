package cmd

import (
	"github.com/spf13/cobra"
)

var field string

var rootCmd = &cobra.Command{
	Use:   "tagquery",
	Short: "Compile tag query expressions into filter documents",
	Long: `tagquery compiles boolean tag query expressions into filter
documents for a document-oriented store.

Expressions combine tags with and/or/not (also spelled + / -), support
* wildcards, {regex} literals, and tag-count comparisons such as
"= 3", "> 2" or "fewer 5".`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&field, "field", "tags", "document field the filter applies to")
}
