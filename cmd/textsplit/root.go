package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/freud/split-text-smartly/internal/bootstrap"
	"github.com/freud/split-text-smartly/internal/config"
	"github.com/freud/split-text-smartly/internal/core/domain"
	"github.com/freud/split-text-smartly/internal/infrastructure/chunking"
)

type splitFlags struct {
	maxRowLength int
	maxRows      int
	trim         bool
	fill         bool
	profile      string
	file         string
	jsonOutput   bool
}

func newRootCmd(cfg config.Config) *cobra.Command {
	var flags splitFlags
	defaults := chunking.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "textsplit [text...]",
		Short: "Wrap text into rows of bounded length",
		Long: `textsplit breaks text into rows of at most --max-row-length characters,
breaking on whitespace and cutting words longer than a row.

The text comes from the arguments, from --file, or from stdin.

Examples:
  textsplit --max-row-length 16 "The quick brown fox"
  echo "The quick brown fox" | textsplit --max-row-length 8 --max-rows 2 --fill
  textsplit --profile lcd --json -f notes.txt`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, cfg, flags, args)
		},
	}

	cmd.Flags().IntVarP(&flags.maxRowLength, "max-row-length", "w", defaults.MaxRowLength, "maximum characters per row")
	cmd.Flags().IntVarP(&flags.maxRows, "max-rows", "n", defaults.MaxRows, "maximum number of rows; the rest joins the last row")
	cmd.Flags().BoolVar(&flags.trim, "trim", false, "trim surrounding whitespace before splitting")
	cmd.Flags().BoolVar(&flags.fill, "fill", false, "pad with empty rows up to --max-rows")
	cmd.Flags().StringVarP(&flags.profile, "profile", "p", "", "named option preset (see SPLIT_PROFILES_PATH)")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "read text from file ('-' for stdin)")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "print the full result as JSON")

	return cmd
}

func runSplit(cmd *cobra.Command, cfg config.Config, flags splitFlags, args []string) error {
	text, err := readInput(cmd, flags.file, args)
	if err != nil {
		return err
	}
	if !utf8.ValidString(text) {
		return domain.WrapError(domain.ErrInvalidInput, "read input", fmt.Errorf("input is not valid utf-8"))
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	req := domain.SplitRequest{
		Text:    domain.PresentText(text),
		Options: patchFromFlags(cmd, flags),
		Profile: flags.profile,
	}
	result, err := app.SplitUC.Split(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	for _, row := range result.Rows {
		if _, err := fmt.Fprintln(out, row); err != nil {
			return err
		}
	}
	return nil
}

// patchFromFlags only carries flags the user set, so profiles and the
// SPLIT_* defaults still apply underneath.
func patchFromFlags(cmd *cobra.Command, flags splitFlags) domain.SplitOptionsPatch {
	var patch domain.SplitOptionsPatch
	if cmd.Flags().Changed("max-row-length") {
		patch.MaxRowLength = &flags.maxRowLength
	}
	if cmd.Flags().Changed("max-rows") {
		patch.MaxRows = &flags.maxRows
	}
	if cmd.Flags().Changed("trim") {
		patch.TrimSentence = &flags.trim
	}
	if cmd.Flags().Changed("fill") {
		patch.FulfillEmptyRows = &flags.fill
	}
	return patch
}

func readInput(cmd *cobra.Command, file string, args []string) (string, error) {
	switch {
	case len(args) > 0 && file != "":
		return "", fmt.Errorf("pass text as arguments or --file, not both")
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "" && file != "-":
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(raw), nil
	default:
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		// Drop the newline a shell pipe appends.
		return strings.TrimSuffix(string(raw), "\n"), nil
	}
}
