package main

import (
	"github.com/jonathan/truthweaver/internal/config"
	"github.com/spf13/cobra"
)

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Print the effective match vocabulary as YAML",
	Long: `Print the vocabulary the analyzer would use: the built-in terms, or the
--vocabulary file merged over them. The output is a valid vocabulary file
and can be edited and passed back with --vocabulary.`,
	Args: cobra.NoArgs,
	RunE: runVocabulary,
}

var vocabularyPath string

func init() {
	vocabularyCmd.Flags().StringVar(&vocabularyPath, "vocabulary", "", "Path to a YAML or JSON vocabulary file")
	rootCmd.AddCommand(vocabularyCmd)
}

func runVocabulary(cmd *cobra.Command, _ []string) error {
	var o config.Overrides
	if cmd.Flags().Changed("vocabulary") {
		o.VocabularyPath = vocabularyPath
	}

	s, err := setup(cmd, o)
	if err != nil {
		return err
	}

	a, err := s.analyzer()
	if err != nil {
		return err
	}

	data, err := a.Vocabulary().Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
