package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"metarules/internal/app"
	"metarules/internal/core"
	"metarules/internal/types"
)

type validateOptions struct {
	Document string
	Format   string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the component pipeline and report advisory flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Document, "document", "", "Metadata document path")
	cmd.Flags().StringVar(&opts.Format, "format", string(types.FormatExtended), "Document format (extended, flat, configurations)")
	_ = cmd.MarkFlagRequired("document")
	return cmd
}

func runValidate(ctx context.Context, opts validateOptions) error {
	service := app.NewService(core.NewRegistry())
	doc, err := service.Documents.LoadDocument(opts.Document)
	if err != nil {
		return err
	}
	outcome := service.Process(ctx, app.Input{Document: doc, Format: types.MetadataFormat(opts.Format)})
	if outcome.Err != nil {
		return outcome.Err
	}
	fmt.Printf("validated: %s (%d variants)\n", outcome.Identity, len(outcome.Component.Variants))
	for _, advisory := range outcome.Component.Advisories {
		fmt.Printf("advisory %s: %s\n", advisory.Code, advisory.Message)
	}
	return nil
}
