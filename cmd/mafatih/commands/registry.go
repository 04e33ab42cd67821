// cmd/mafatih/commands/registry.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mafatih/pkg/registry"
)

type activitySummary struct {
	TaskType    string   `json:"taskType"`
	DisplayName string   `json:"displayName"`
	Status      string   `json:"status"`
	Timeout     string   `json:"timeout"`
	Retries     int      `json:"retries"`
	ErrorCodes  []string `json:"errorCodes"`
}

func newRegistryCmd() *cobra.Command {
	var path string

	load := func() (*registry.ActivityRegistry, error) {
		if path == "" {
			return registry.Default()
		}
		return registry.LoadRegistry(path)
	}

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the job worker activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "registry file (defaults to the built-in registry)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List registered activities",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, err := load()
				if err != nil {
					return err
				}
				out := make([]activitySummary, 0, len(reg.Activities))
				for _, a := range reg.Activities {
					out = append(out, activitySummary{
						TaskType:    a.TaskType,
						DisplayName: a.DisplayName,
						Status:      a.ImplementationStatus,
						Timeout:     a.Timeout,
						Retries:     a.Retries,
						ErrorCodes:  a.ErrorCodes,
					})
				}
				return printJSON(cmd, out)
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Check that a registry file is well formed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, err := load()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "registry %s is valid: %d activities\n", reg.Version, len(reg.Activities))
				return nil
			},
		},
	)
	return cmd
}
