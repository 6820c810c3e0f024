// Package render formats item lists for people: HTML cards for the web and an
// aligned table for terminals.
package render

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"stockroom/internal/core/types"
	"stockroom/internal/domain/inventory"
)

// Empty is shown in place of an empty list.
const Empty = "No items found."

// NoComment is shown for items without a comment.
const NoComment = "N/A"

// HTML renders one card per item. All item text is escaped.
func HTML(items []inventory.Item) string {
	if len(items) == 0 {
		return "<p>" + Empty + "</p>\n"
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteString("<div class=\"item\">\n")
		fmt.Fprintf(&b, "  <h3>%s</h3>\n", html.EscapeString(item.Name))
		field(&b, "ID", item.ID)
		field(&b, "Category", string(item.Category))
		field(&b, "Quantity", strconv.Itoa(item.Quantity))
		field(&b, "Price", Price(item.Price))
		field(&b, "Supplier", item.Supplier)
		field(&b, "Status", string(item.Status))
		field(&b, "Popular", YesNo(item.Popular))
		field(&b, "Comment", item.CommentOr(NoComment))
		b.WriteString("</div>\n")
	}
	return b.String()
}

func field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  <p>%s: %s</p>\n", label, html.EscapeString(value))
}

// Text writes items as an aligned table.
func Text(w io.Writer, items []inventory.Item) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, Empty)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tQTY\tPRICE\tSUPPLIER\tSTATUS\tPOPULAR\tCOMMENT")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			item.ID,
			item.Name,
			item.Category,
			item.Quantity,
			Price(item.Price),
			item.Supplier,
			item.Status,
			YesNo(item.Popular),
			item.CommentOr(NoComment),
		)
	}
	return tw.Flush()
}

// Price formats m as dollars with two decimals.
func Price(m types.Money) string {
	return "$" + types.FormatPrice(m)
}

// YesNo formats a flag for display.
func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
