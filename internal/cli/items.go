package cli

import (
	"context"

	"github.com/spf13/cobra"

	"stockroom/internal/core/apperror"
	"stockroom/internal/domain/inventory"
	"stockroom/internal/render"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, cmd, func(ctx context.Context, svc *inventory.Service) []inventory.Item {
				return svc.ListAll(ctx)
			})
		},
	}
}

// NewPopularCommand creates the popular command.
func NewPopularCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "popular",
		Short: "List items flagged popular",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, cmd, func(ctx context.Context, svc *inventory.Service) []inventory.Item {
				return svc.ListPopular(ctx)
			})
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <substring>",
		Short: "List items whose name contains a substring, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, cmd, func(ctx context.Context, svc *inventory.Service) []inventory.Item {
				return svc.SearchByName(ctx, args[0])
			})
		},
	}
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find <name>",
		Short: "Show the first item with an exact name, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			ctx := commandContext(cmd)

			svc, err := openStore(ctx, rootOpts, formatter)
			if err != nil {
				return err
			}

			item, err := svc.FindByName(ctx, args[0])
			if err != nil {
				_ = formatter.Error(apperror.CodeOf(err), apperror.MessageOf(err), details(err))
				return WrapExitError(ExitFailure, "find", err)
			}
			return writeItems(formatter, []inventory.Item{item})
		},
	}
}

func runQuery(opts *RootOptions, cmd *cobra.Command, query func(context.Context, *inventory.Service) []inventory.Item) error {
	formatter := newFormatter(opts, cmd)
	ctx := commandContext(cmd)

	svc, err := openStore(ctx, opts, formatter)
	if err != nil {
		return err
	}
	return writeItems(formatter, query(ctx, svc))
}

func writeItems(f *OutputFormatter, items []inventory.Item) error {
	switch f.Format {
	case FormatJSON:
		return f.Success(items)
	case FormatHTML:
		_, err := f.Writer.Write([]byte(render.HTML(items)))
		return err
	default:
		return render.Text(f.Writer, items)
	}
}
