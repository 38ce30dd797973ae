package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/negpdo/emiti/internal/model"
)

// itemFields is the typed result of the add/update item form.
type itemFields struct {
	name     string
	quantity int
	price    float64
	code     string
	expiry   string
}

// readItemFields collects and validates the full item form. Parsing happens
// here at the boundary; the store never sees an unvalidated value. A nil
// result means the input was invalid and the notice explains why.
func (a *App) readItemFields(st State) (*itemFields, State, error) {
	name, err := a.readLine("Item name: ")
	if err != nil {
		return nil, State{}, err
	}
	if name == "" {
		return nil, st.at(ScreenInventory, "Item name required"), nil
	}

	quantityStr, err := a.readLine("Quantity: ")
	if err != nil {
		return nil, State{}, err
	}
	quantity, perr := parseInt(quantityStr)
	if perr != nil || quantity < 0 {
		return nil, st.at(ScreenInventory, "Invalid input: quantity must be a non-negative whole number"), nil
	}

	priceStr, err := a.readLine("Price: ")
	if err != nil {
		return nil, State{}, err
	}
	price, perr := strconv.ParseFloat(priceStr, 64)
	if perr != nil || price < 0 {
		return nil, st.at(ScreenInventory, "Invalid input: price must be a non-negative number"), nil
	}

	code, err := a.readLine("Code: ")
	if err != nil {
		return nil, State{}, err
	}

	expiry, err := a.readLine("Expiry date (YYYY-MM-DD HH:MM:SS): ")
	if err != nil {
		return nil, State{}, err
	}
	if _, perr := time.Parse(model.TimeFormat, expiry); perr != nil {
		return nil, st.at(ScreenInventory, "Invalid input: expiry date must look like 2026-01-31 00:00:00"), nil
	}

	return &itemFields{name: name, quantity: quantity, price: price, code: code, expiry: expiry}, st, nil
}

func (a *App) addItemForm(ctx context.Context, st State) (State, error) {
	a.banner(st, "Add Item")

	fields, next, err := a.readItemFields(st)
	if err != nil {
		return State{}, err
	}
	if fields == nil {
		return next, nil
	}

	ok, err := a.inv.AddItem(ctx, st.Username, fields.name, fields.quantity, fields.price, fields.code, fields.expiry)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return st.at(ScreenInventory, fmt.Sprintf("Item %q already exists", fields.name)), nil
	}
	return st.at(ScreenInventory, fmt.Sprintf("Added %q", fields.name)), nil
}

func (a *App) updateItemForm(ctx context.Context, st State) (State, error) {
	a.banner(st, "Update Item")

	fields, next, err := a.readItemFields(st)
	if err != nil {
		return State{}, err
	}
	if fields == nil {
		return next, nil
	}

	ok, err := a.inv.UpdateItem(ctx, st.Username, fields.name, fields.quantity, fields.price, fields.code, fields.expiry)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return st.at(ScreenInventory, fmt.Sprintf("Item %q not found", fields.name)), nil
	}
	return st.at(ScreenInventory, fmt.Sprintf("Updated %q", fields.name)), nil
}

func (a *App) deleteItemForm(ctx context.Context, st State) (State, error) {
	a.banner(st, "Delete Item")

	name, err := a.readLine("Item name: ")
	if err != nil {
		return State{}, err
	}

	ok, err := a.inv.DeleteItem(ctx, st.Username, name)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return st.at(ScreenInventory, fmt.Sprintf("Item %q not found", name)), nil
	}
	return st.at(ScreenInventory, fmt.Sprintf("Deleted %q", name)), nil
}

func (a *App) flagItemForm(ctx context.Context, st State) (State, error) {
	a.banner(st, "Flag Item")

	name, err := a.readLine("Item name: ")
	if err != nil {
		return State{}, err
	}

	ok, err := a.inv.FlagItem(ctx, st.Username, name)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return st.at(ScreenInventory, fmt.Sprintf("Item %q not found", name)), nil
	}
	return st.at(ScreenInventory, fmt.Sprintf("Flagged %q", name)), nil
}

func (a *App) topUsersView(ctx context.Context, st State) (State, error) {
	a.banner(st, "Top Users")

	name, err := a.readLine("Item name: ")
	if err != nil {
		return State{}, err
	}

	top, err := a.inv.TopUsersForItem(ctx, name, 0)
	if err != nil {
		return State{}, err
	}
	renderTopUsers(a.out, name, top)

	if _, err := a.readLine("Press Enter to continue "); err != nil {
		return State{}, err
	}
	return st.at(ScreenInventory, ""), nil
}

// parseInt parses a non-empty decimal integer.
func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}
