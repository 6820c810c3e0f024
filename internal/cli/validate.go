package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/inventory"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Items   int    `json:"items"`
	Message string `json:"message"`
}

type itemFlags struct {
	id       string
	name     string
	category string
	quantity int
	price    string
	supplier string
	status   string
	popular  bool
	comment  string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &itemFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the seed file and, optionally, a candidate item",
		Long: `Load the seed file, then check the candidate item described by the item
flags against it without adding it. Without item flags only the seed file is
checked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, flags, cmd)
		},
	}

	cmd.Flags().StringVar(&flags.id, "id", "", "item id")
	cmd.Flags().StringVar(&flags.name, "name", "", "item name")
	cmd.Flags().StringVar(&flags.category, "category", "", "item category")
	cmd.Flags().IntVar(&flags.quantity, "quantity", 0, "item quantity")
	cmd.Flags().StringVar(&flags.price, "price", "", "item price")
	cmd.Flags().StringVar(&flags.supplier, "supplier", "", "item supplier")
	cmd.Flags().StringVar(&flags.status, "status", "", "item status")
	cmd.Flags().BoolVar(&flags.popular, "popular", false, "item is popular")
	cmd.Flags().StringVar(&flags.comment, "comment", "", "item comment")

	return cmd
}

func runValidate(opts *RootOptions, flags *itemFlags, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := commandContext(cmd)

	svc, err := openStore(ctx, opts, formatter)
	if err != nil {
		return err
	}

	if !hasItemFlags(cmd) {
		return outputValidateSuccess(formatter, svc.Count(), fmt.Sprintf("%d item(s) valid", svc.Count()))
	}

	draft, err := flags.draft(cmd)
	if err != nil {
		return outputValidateFailure(formatter, err, ExitCommandError)
	}
	if err := svc.Validate(ctx, draft); err != nil {
		return outputValidateFailure(formatter, err, ExitFailure)
	}
	return outputValidateSuccess(formatter, svc.Count(), "Item is valid.")
}

func hasItemFlags(cmd *cobra.Command) bool {
	for _, name := range []string{"id", "name", "category", "quantity", "price", "supplier", "status", "popular", "comment"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// draft builds a candidate from the flags that were set; unset flags stay
// absent so validation reports them.
func (f *itemFlags) draft(cmd *cobra.Command) (inventory.Draft, error) {
	category, err := inventory.ParseCategory(f.category)
	if err != nil {
		return inventory.Draft{}, err
	}
	status, err := inventory.ParseStatus(f.status)
	if err != nil {
		return inventory.Draft{}, err
	}

	d := inventory.Draft{
		ID:       f.id,
		Name:     f.name,
		Category: category,
		Supplier: f.supplier,
		Status:   status,
	}

	changed := cmd.Flags().Changed
	if changed("quantity") {
		qty := f.quantity
		d.Quantity = &qty
	}
	if changed("price") {
		price, err := types.NewMoneyFromString(f.price)
		if err != nil {
			return inventory.Draft{}, apperror.NewInvalidInput("invalid price").WithDetail("value", f.price)
		}
		d.Price = &price
	}
	if changed("popular") {
		popular := f.popular
		d.Popular = &popular
	}
	if changed("comment") {
		comment := f.comment
		d.Comment = &comment
	}
	return d, nil
}

func outputValidateSuccess(f *OutputFormatter, items int, message string) error {
	if f.Format == FormatJSON {
		return f.Success(ValidationResult{Valid: true, Items: items, Message: message})
	}
	fmt.Fprintln(f.Writer, "✓ "+message)
	return nil
}

func outputValidateFailure(f *OutputFormatter, err error, code int) error {
	_ = f.Error(apperror.CodeOf(err), apperror.MessageOf(err), details(err))
	return WrapExitError(code, "validate", err)
}
