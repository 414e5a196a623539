package cmd

import (
	"errors"
	"time"

	"github.com/briandowns/spinner"
	"github.com/felixbrock/lingobridge/internal/app"
	"github.com/felixbrock/lingobridge/internal/formatter"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var outputFormat string
	var extraContext map[string]string

	cmd := &cobra.Command{
		Use:   "check SENTENCE",
		Short: "Check one English sentence from the terminal",
		Long: `Send one sentence to the grammar backend and print the result.

Examples:
  # Check a sentence
  lingobridge check "Yesterday I go to park with my friend."

  # Machine-readable output
  lingobridge check "She don't like apples." -o json

  # Pass extra context to the backend
  lingobridge check "She go home." --context level=A2`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return formatter.ValidateFormat(outputFormat)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := newGrammarRepo(opts.cfg)
			if err != nil {
				return err
			}

			s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			s.Suffix = " Analyzing..."

			sub := app.NewSubmission(repo, app.WithExtraContext(opts.cfg.extraContext(extraContext)))
			sub.OnChange(func(state app.SubmissionState) {
				if _, ok := state.(app.Loading); ok {
					s.Start()
					return
				}
				s.Stop()
			})

			state, outcome := sub.Submit(cmd.Context(), args[0])
			if outcome != app.Settled {
				return nil
			}

			switch state := state.(type) {
			case app.Succeeded:
				return formatter.DisplayFeedback(cmd.OutOrStdout(), state.Feedback, outputFormat)
			case app.Failed:
				return errors.New(state.Message)
			default:
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")
	cmd.Flags().StringToStringVar(&extraContext, "context", nil, "extra context for the backend as key=value pairs")

	return cmd
}
