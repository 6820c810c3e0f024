// Package cli implements the stockroom command-line interface. Every command
// loads the optional seed file into a fresh store and queries it.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"stockroom/internal/core/apperror"
	appctx "stockroom/internal/core/context"
	"stockroom/internal/domain/inventory"
	"stockroom/internal/seed"
	"stockroom/pkg/logger"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatText, FormatJSON, FormatHTML}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string
	SeedFile string
}

// NewRootCommand creates the root command for the stockroom CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stockroom",
		Short: "Query an inventory list",
		Long:  "Load items from a YAML seed file and list, search or validate them.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (text|json|html)")
	cmd.PersistentFlags().StringVar(&opts.SeedFile, "seed", "", "YAML file with initial items")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewPopularCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// commandContext returns the command's context carrying a fresh trace.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return appctx.WithTrace(ctx, appctx.NewTraceContext("", ""))
}

// openStore builds a service and loads the seed file into it, if one is set.
// A rejected seed item is a command error: nothing useful can be queried.
func openStore(ctx context.Context, opts *RootOptions, f *OutputFormatter) (*inventory.Service, error) {
	svc := inventory.NewService(logger.NewNop())
	if opts.SeedFile == "" {
		f.VerboseLog("no seed file; starting with an empty inventory")
		return svc, nil
	}

	n, err := seed.LoadFile(ctx, svc, opts.SeedFile)
	if err != nil {
		_ = f.Error(apperror.CodeOf(err), apperror.MessageOf(err), details(err))
		return nil, WrapExitError(ExitCommandError, "load seed file", err)
	}
	f.VerboseLog("loaded %d item(s) from %s", n, opts.SeedFile)
	return svc, nil
}

func details(err error) map[string]any {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr.Details
	}
	return nil
}
