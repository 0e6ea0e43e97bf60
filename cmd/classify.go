package cmd

import (
	"fmt"
	"strings"

	"github.com/rfoley/loglens/internal/classify"
	"github.com/rfoley/loglens/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] <file>",
	Short: "Classify a log file into error categories",
	Long: `Match the file content against the built-in category pattern tables
(kubernetes, docker, ci_cd, terraform, cloud, networking) and print the
categories that matched.

Examples:
  loglens classify deploy.log
  loglens classify --format json kubelet.log
  loglens classify --text "Error from server (NotFound): pod nginx not found"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("text", "", "classify inline text instead of a file")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	inlineText, _ := cmd.Flags().GetString("text")

	if inlineText == "" && len(args) == 0 {
		return fmt.Errorf("provide a log file argument or --text")
	}
	if inlineText != "" && len(args) > 0 {
		return fmt.Errorf("--text and a file argument are mutually exclusive")
	}

	var (
		text   string
		source string
		err    error
	)
	if inlineText != "" {
		text = inlineText
		source = "(inline)"
	} else {
		source = args[0]
		text, err = readWholeFile(source)
		if err != nil {
			return err
		}
	}

	categories := classify.Classify(text)

	format := output.ParseFormat(viper.GetString("format"))
	if format == output.FormatJSON {
		writer := output.New(cmd.OutOrStdout(), output.FormatJSON)
		return writer.WriteJSON(map[string]interface{}{
			"file":       source,
			"categories": categories,
		})
	}

	if len(categories) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No known error categories matched.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Categories: %s\n", strings.Join(categories, ", "))
	return nil
}
