// Package cli implements the mockstore command-line interface, a thin
// front end for operating a flat-file storage root by hand.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds global flag values and the lazily opened registry shared by all
// subcommands of one root command.
type app struct {
	configDir string
	dataDir   string
	logLevel  string

	registry types.Registry
	logger   *zap.Logger
}

// NewRootCmd creates the top-level "mockstore" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "mockstore",
		Short: "A flat-file resource store",
		Long: "mockstore keeps resources as directories of attribute files:\n" +
			"<data-dir>/<type>/<id>/<attribute>. Output is JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: .mockstore)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: .mockstore-db)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCreateCmd(a))
	root.AddCommand(newGetCmd(a))
	root.AddCommand(newUpdateCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newTouchCmd(a))
	root.AddCommand(newFindCmd(a))
	root.AddCommand(newAttrCmd(a))
	root.AddCommand(newRecoverCmd(a))
	root.AddCommand(newSlugCmd())
	root.AddCommand(newTypesCmd(a))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps storage failures to exitSysError and everything else
// (bad input, missing or conflicting records, usage errors) to
// exitUserError.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrWriteFailed), errors.Is(err, types.ErrReadFailed):
		return exitSysError
	default:
		return exitUserError
	}
}
