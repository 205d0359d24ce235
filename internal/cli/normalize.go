package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"metarules/internal/adapters"
	"metarules/internal/shared"
	"metarules/internal/types"
)

type normalizeOptions struct {
	Document string
	Format   string
	Identity string
}

func newNormalizeCommand() *cobra.Command {
	opts := normalizeOptions{}
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize a metadata document into the component model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNormalize(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Document, "document", "", "Metadata document path")
	cmd.Flags().StringVar(&opts.Format, "format", string(types.FormatExtended), "Document format (extended, flat, configurations)")
	cmd.Flags().StringVar(&opts.Identity, "identity", "", "Override the document identity (group:name:version)")
	_ = cmd.MarkFlagRequired("document")
	return cmd
}

func runNormalize(_ context.Context, opts normalizeOptions) error {
	source := adapters.NewDocumentFileAdapter()
	doc, err := source.LoadDocument(opts.Document)
	if err != nil {
		return err
	}
	if opts.Identity != "" {
		id, err := shared.ParseModuleIdentity(opts.Identity)
		if err != nil {
			return err
		}
		doc.Identity = id
	}
	component, err := adapters.Normalize(doc, types.MetadataFormat(opts.Format))
	if err != nil {
		return err
	}
	rendered, err := yaml.Marshal(component)
	if err != nil {
		return err
	}
	fmt.Print(string(rendered))
	return nil
}
