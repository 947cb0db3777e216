package cli

import (
	"github.com/gork-labs/bdd2doc/internal/discover"
	"github.com/spf13/cobra"
)

func newGenerateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the whole API model built from a spec directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireDir(); err != nil {
				return err
			}
			api, err := a.discover(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Info("model ready", "namespaces", len(api.Namespaces), "output", a.cfg.Output)
			return modelWriter{fs: a.files, stdout: a.stdout}.write(a.cfg.Output, a.cfg.Format, api)
		},
	}

	cmd.Flags().StringVar(&a.cfg.Dir, "dir", "", "Test files root directory")
	cmd.Flags().StringVar(&a.cfg.FileEnding, "fe", "", "Spec file name filter (default \""+discover.DefaultFileEnding+"\")")
	cmd.Flags().StringVar(&a.cfg.Tag, "tag", "", "Version tag separating cache entries")
	cmd.Flags().StringVar(&a.cfg.Output, "output", defaultOutput, "Path to output file or '-' for stdout")
	cmd.Flags().StringVar(&a.cfg.Format, "format", defaultFormat, "Output format: json, yaml or cbor")

	return cmd
}
