package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/ivyrun/internal/app"
	"github.com/doeshing/ivyrun/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// NewRootCmd wires the cobra root command. A bare invocation behaves
// like `ivyrun run`, matching the original one-shot launcher.
func NewRootCmd(opts Options) *cobra.Command {
	container := app.BuildContainer(opts.ConfigPath, opts.Verbose)

	var runFlags commands.RunFlags

	root := &cobra.Command{
		Use:   "ivyrun",
		Short: "Ivy research pipeline launcher",
		Long: "ivyrun supervises the Ivy pipeline: it starts the document extractor,\n" +
			"verifies it is healthy, runs the paper sync task, and guarantees the\n" +
			"extractor is torn down whatever the outcome.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.ExecuteRun(cmd.Context(), container, runFlags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	commands.AddRunFlags(root, &runFlags)

	root.AddCommand(commands.NewRunCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root
}
