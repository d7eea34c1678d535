package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

func newAttrCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attr",
		Short: "Operate on single attributes",
	}
	cmd.AddCommand(newAttrSetCmd(a))
	cmd.AddCommand(newAttrUnsetCmd(a))
	cmd.AddCommand(newAttrAddCmd(a))
	cmd.AddCommand(newAttrRemoveCmd(a))
	return cmd
}

// attrResult is printed by the attr subcommands.
type attrResult struct {
	ID        string      `json:"id"`
	Attribute string      `json:"attribute"`
	Value     types.Value `json:"value"`
}

func newAttrSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <type> <id> <attr> <value>",
		Short: "Write one attribute and touch updated",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			v, err := parseValue(args[3])
			if err != nil {
				return err
			}
			ok, err := store.UpdateAttr(args[1], args[2], v)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: attribute %q is immutable", types.ErrInvalidInput, args[2])
			}
			return printJSON(cmd, attrResult{ID: args[1], Attribute: args[2], Value: v})
		},
	}
}

func newAttrUnsetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <type> <id> <attr>...",
		Short: "Remove attributes from a record",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteAttr([]string{args[1]}, args[2:]); err != nil {
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

func newAttrAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <type> <id> <attr> <value>...",
		Short: "Append values to a plural attribute",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			v, err := parseValues(args[3:])
			if err != nil {
				return err
			}
			out, err := store.AppendValues(args[1], args[2], v)
			if err != nil {
				return err
			}
			return printJSON(cmd, attrResult{ID: args[1], Attribute: args[2], Value: out})
		},
	}
}

func newAttrRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <type> <id> <attr> <value>...",
		Short: "Remove values from a plural attribute",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(args[0])
			if err != nil {
				return err
			}
			v, err := parseValues(args[3:])
			if err != nil {
				return err
			}
			out, err := store.ComputeWithoutValues(args[1], args[2], v)
			if err != nil {
				return err
			}
			ok, err := store.UpdateAttr(args[1], args[2], out)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: attribute %q is immutable", types.ErrInvalidInput, args[2])
			}
			return printJSON(cmd, attrResult{ID: args[1], Attribute: args[2], Value: out})
		},
	}
}
