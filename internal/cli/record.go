package cli

import (
	"github.com/spf13/cobra"
)

func newCreateCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "create <type> [key=value...]",
		Short: "Create a record",
		Long: "Create a record of the given type. Values are parsed as JSON when valid,\n" +
			"otherwise stored as strings. The id comes from --id, the payload's id, or a new UUID.",
		Example: "  mockstore create messages message='Hello World' tags='[\"a\",\"b\"]'",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			payload, err := parsePayload(args[1:])
			if err != nil {
				return err
			}
			rec, err := store.Create(id, payload)
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "record id (default: payload id or a new UUID)")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <type> <id> [attr...]",
		Short: "Show a record or selected attributes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			rec, err := store.Get(args[1], args[2:]...)
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <type> <id> key=value...",
		Short: "Update attributes of a record",
		Long:  "Rewrite the given attributes of an existing record. Immutable attributes are skipped.",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			payload, err := parsePayload(args[2:])
			if err != nil {
				return err
			}
			rec, err := store.Update(args[1], payload)
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <type> <id>...",
		Short: "Delete records",
		Long:  "Delete each record in order, stopping at the first failure.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(args[1:]...); err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"deleted": args[1:]})
		},
	}
}

func newTouchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "touch <type> <id>",
		Short: "Set updated to the current time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			if err := store.Touch(args[1]); err != nil {
				return err
			}
			rec, err := store.Get(args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		},
	}
}
