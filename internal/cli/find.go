package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// findResult is printed by find. Records is set only with --fetch.
type findResult struct {
	IDs     []string       `json:"ids"`
	Found   int            `json:"found"`
	Records []types.Record `json:"records,omitempty"`
}

func newFindCmd(a *app) *cobra.Command {
	var (
		limit  int
		offset int
		sortBy string
		fetch  bool
	)
	cmd := &cobra.Command{
		Use:   "find <type> [key=value...]",
		Short: "Find records matching filters",
		Long: "List record ids whose attributes equal every key=value filter. Results are\n" +
			"sorted by --sort (default -created) and paginated by --limit and --offset.",
		Example: "  mockstore find messages status=open --sort=-updated,name --limit 10",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			where, err := parsePayload(args[1:])
			if err != nil {
				return err
			}
			ids, err := store.Find(types.Query{
				Where:  where,
				Limit:  limit,
				Offset: offset,
				Sort:   types.ParseSort(sortBy),
			})
			if err != nil {
				return err
			}
			res := findResult{IDs: ids, Found: store.Found()}
			if res.IDs == nil {
				res.IDs = []string{}
			}
			if fetch {
				if res.Records, err = store.Fetch(ids); err != nil {
					return err
				}
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of ids (0 = unbounded)")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of ids to skip")
	cmd.Flags().StringVar(&sortBy, "sort", "", "comma-separated sort keys, prefix - for descending")
	cmd.Flags().BoolVar(&fetch, "fetch", false, "include the full records")
	return cmd
}
