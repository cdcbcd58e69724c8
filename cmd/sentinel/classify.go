package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"MultiplierSentinel/internal/predict"
	"MultiplierSentinel/internal/validator"
)

var classifyCmd = &cobra.Command{
	Use:     "classify [values]",
	Short:   "Classify a comma-separated multiplier history",
	Example: `  sentinel classify --length 3 "2.5, 3.0, 3.5"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		length, _ := cmd.Flags().GetInt("length")
		if length == 0 {
			length = cfg.Predict.DefaultLength
		}

		svc := predict.NewService(predict.Options{
			AllowedLengths: cfg.Predict.AllowedLengths,
			DefaultLength:  cfg.Predict.DefaultLength,
		}, nil, nil)

		res, err := svc.Predict(cmd.Context(), "cli", strings.Join(args, " "), length)
		if err != nil {
			var verr *validator.ValidationError
			switch {
			case errors.As(err, &verr):
				fmt.Fprintln(cmd.ErrOrStderr(), renderError(verr.Message()))
			case errors.Is(err, predict.ErrLengthNotAllowed):
				fmt.Fprintln(cmd.ErrOrStderr(), renderError(fmt.Sprintf("Length must be one of %v", svc.AllowedLengths())))
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderResult(res))
		return nil
	},
}

func init() {
	classifyCmd.Flags().IntP("length", "n", 0, "Required number of values (defaults to predict.default_length)")
}
