package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mockstore/pkg/flatfile"
	"github.com/mesh-intelligence/mockstore/pkg/types"
)

func newRecoverCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recover <type>",
		Short: "Roll back interrupted writes",
		Long: "Remove records whose creation never finished, clear stale update journals,\n" +
			"and delete leftover temporary files.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			recovered, err := store.Recover()
			if err != nil {
				return err
			}
			if recovered == nil {
				recovered = []types.Recovery{}
			}
			return printJSON(cmd, recovered)
		},
	}
}

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered types and their endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.open()
			if err != nil {
				return err
			}
			index := reg.Index()
			if index == nil {
				index = []types.IndexEntry{}
			}
			return printJSON(cmd, index)
		},
	}
}

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <text>...",
		Short: "Print the slug generated for text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), flatfile.GenerateSlug(strings.Join(args, " ")))
			return nil
		},
	}
}
