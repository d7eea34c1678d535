package cli

import (
	"github.com/spf13/cobra"
)

// initResult is printed by init.
type initResult struct {
	ConfigDir string   `json:"config_dir"`
	DataDir   string   `json:"data_dir"`
	Types     []string `json:"types"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and data directories",
		Long: "Create the configuration directory with a default config.yaml if missing,\n" +
			"create the data directory, and check that every configured type can be opened.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.resolve()
			if err != nil {
				return err
			}
			reg, err := a.open()
			if err != nil {
				return err
			}
			return printJSON(cmd, initResult{
				ConfigDir: env.ConfigDir,
				DataDir:   env.DataDir,
				Types:     reg.Types(),
			})
		},
	}
}
