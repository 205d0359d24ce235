package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"metarules/internal/adapters"
	"metarules/internal/core"
)

type latestOptions struct {
	Candidates string
	Status     string
}

func newLatestCommand() *cobra.Command {
	opts := latestOptions{}
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Select the latest candidate with at least the requested maturity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLatest(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Candidates, "candidates", "", "Candidate list yaml path")
	cmd.Flags().StringVar(&opts.Status, "status", core.StatusAny, "Requested status (scheme member or any)")
	_ = cmd.MarkFlagRequired("candidates")
	return cmd
}

func runLatest(_ context.Context, opts latestOptions) error {
	source := adapters.NewDocumentFileAdapter()
	file, err := source.LoadCandidates(opts.Candidates)
	if err != nil {
		return err
	}
	resolver := core.NewStatusResolver(core.NewVersionOrder())
	selected, err := resolver.ResolveLatest(file.Scheme, file.Candidates, opts.Status)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", selected.Version, selected.Status)
	return nil
}
