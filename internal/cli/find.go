package cli

import (
	"context"
	"fmt"

	"github.com/gork-labs/bdd2doc/internal/discover"
	"github.com/gork-labs/bdd2doc/internal/generator"
	"github.com/spf13/cobra"
)

// Messages printed by find for the two non-error misses.
const (
	msgNoDefinitions = "No API definitions found! Check your directory!"
	msgNotFound      = "Was not found!"
)

func newFindCommand(a *app) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Print the API entity addressed by a composite key",
		Example: `  bdd2doc find --dir ./specs --name 'js-MyComponent.SetDataSource(dataSource)'
  bdd2doc find --dir ./specs --name js-MyComponent.Create.static --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.find(cmd.Context(), key)
		},
	}

	cmd.Flags().StringVar(&a.cfg.Dir, "dir", "", "Test files root directory")
	cmd.Flags().StringVar(&key, "name", "", "Composite key of the API member to find")
	cmd.Flags().StringVar(&a.cfg.FileEnding, "fe", "", "Spec file name filter (default \""+discover.DefaultFileEnding+"\")")
	cmd.Flags().StringVar(&a.cfg.Tag, "tag", "", "Version tag separating cache entries")
	cmd.Flags().StringVar(&a.cfg.Format, "format", defaultFormat, "Output format: json or yaml")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func (a *app) find(ctx context.Context, key string) error {
	if err := a.requireDir(); err != nil {
		return err
	}
	if a.cfg.Format == "cbor" {
		return fmt.Errorf("unsupported format for find: %s", a.cfg.Format)
	}

	api, err := a.discover(ctx)
	if err != nil {
		return err
	}
	if api == nil || len(api.Namespaces) == 0 {
		a.logger.Warn("empty model", "dir", a.cfg.Dir, "fe", a.cfg.FileEnding)
		_, err := fmt.Fprintln(a.stderr, msgNoDefinitions)
		return err
	}

	member, ok := generator.FindByCompositeKey(api, key)
	if !ok {
		_, err := fmt.Fprintln(a.stdout, msgNotFound)
		return err
	}
	return writeValue(a.stdout, a.cfg.Format, member, true)
}

// discover builds or loads the model for the configured directory.
func (a *app) discover(ctx context.Context) (*generator.APIModel, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	return discover.New(store, a.logger).Discover(ctx, a.cfg.Dir, a.cfg.FileEnding, a.cfg.Tag)
}
