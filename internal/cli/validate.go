package cli

import (
	"fmt"

	"github.com/gork-labs/bdd2doc/internal/validator"
	"github.com/spf13/cobra"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a JSON or YAML model document written by generate",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]
			summary, err := validator.ValidateDocument(path)
			if err != nil {
				return &ExitError{Code: 2, Message: fmt.Sprintf("%s: %v", path, err)}
			}
			a.logger.Debug("document valid", "file", path)
			_, err = fmt.Fprintf(a.stdout, "%s: valid (%d namespaces, %d classes, %d methods, %d events, %d fields)\n",
				path, summary.Namespaces, summary.Classes, summary.Methods, summary.Events, summary.Fields)
			return err
		},
	}
}
