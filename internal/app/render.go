package app

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/negpdo/emiti/internal/model"
	"github.com/negpdo/emiti/internal/store"
)

// ANSI styles. Expired rows are red, flagged rows yellow, like the palette
// of the original screen.
const (
	styleReset   = "\x1b[0m"
	styleExpired = "\x1b[31m"
	styleFlagged = "\x1b[33m"
)

var inventoryHeader = []string{"ID", "NAME", "EXPIRY_DATE", "PRICE", "QUANTITY", "CODE"}

// renderInventory prints the inventory table with column widths sized to the
// data. Expired rows take the expired style even when also flagged.
func renderInventory(w io.Writer, items []model.Item, now time.Time) {
	widths := make([]int, len(inventoryHeader))
	for i, h := range inventoryHeader {
		widths[i] = len(h)
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row := []string{
			strconv.FormatInt(item.ID, 10),
			item.Name,
			item.ExpiryDate,
			strconv.FormatFloat(item.Price, 'g', -1, 64),
			strconv.Itoa(item.Quantity),
			item.Code,
		}
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows = append(rows, row)
	}

	printRow(w, inventoryHeader, widths, "")
	for i, row := range rows {
		style := ""
		switch {
		case items[i].Expired(now):
			style = styleExpired
		case items[i].Flag:
			style = styleFlagged
		}
		printRow(w, row, widths, style)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "  (no items)")
	}
}

func printRow(w io.Writer, cells []string, widths []int, style string) {
	if style != "" {
		fmt.Fprint(w, style)
	}
	for i, cell := range cells {
		fmt.Fprintf(w, " %-*s", widths[i], cell)
	}
	if style != "" {
		fmt.Fprint(w, styleReset)
	}
	fmt.Fprintln(w)
}

// renderTopUsers prints the per-user quantity ranking for an item name.
func renderTopUsers(w io.Writer, name string, top []store.TopUser) {
	if len(top) == 0 {
		fmt.Fprintln(w, "  (no users)")
		return
	}

	fmt.Fprintf(w, " Top users for %q:\n", name)
	for i, tu := range top {
		fmt.Fprintf(w, "  %d. %-20s %d\n", i+1, tu.Username, tu.Quantity)
	}
}
