package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/negpdo/emiti/internal/auth"
	"github.com/negpdo/emiti/internal/model"
	"github.com/negpdo/emiti/internal/store"
)

// App is the terminal UI. It drives a loop of screen handlers, each a pure
// transition from State to State plus prompt/render side effects on the
// injected reader and writer.
type App struct {
	in          *bufio.Reader
	out         io.Writer
	inv         store.Inventory
	creds       store.Credentials
	sessionPath string
	now         func() time.Time
}

// New builds the UI over the given streams and stores. sessionPath may be
// empty to disable session persistence.
func New(in io.Reader, out io.Writer, inv store.Inventory, creds store.Credentials, sessionPath string) *App {
	return &App{
		in:          bufio.NewReader(in),
		out:         out,
		inv:         inv,
		creds:       creds,
		sessionPath: sessionPath,
		now:         time.Now,
	}
}

// Run resumes a saved session if one verifies, then loops screen handlers
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	st := State{Screen: ScreenMainMenu}

	if a.sessionPath != "" {
		claims, err := auth.LoadSession(ctx, a.creds, a.sessionPath)
		if err != nil {
			return err
		}
		if claims != nil {
			st = State{
				Screen:   ScreenInventory,
				UserID:   claims.UserID,
				Username: claims.Username,
				Role:     claims.Role,
				Notice:   fmt.Sprintf("Resumed session for %s", claims.Username),
			}
			slog.Info("session resumed", "user", claims.Username)
		}
	}

	for st.Screen != ScreenQuit {
		next, err := a.step(ctx, st)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		st = next
	}
	return nil
}

// step runs the handler for the current screen.
func (a *App) step(ctx context.Context, st State) (State, error) {
	switch st.Screen {
	case ScreenMainMenu:
		return a.mainMenu(st)
	case ScreenRegister:
		return a.registerForm(ctx, st)
	case ScreenLogin:
		return a.loginForm(ctx, st)
	case ScreenInventory:
		return a.inventoryMenu(ctx, st)
	case ScreenAddItem:
		return a.addItemForm(ctx, st)
	case ScreenUpdateItem:
		return a.updateItemForm(ctx, st)
	case ScreenDeleteItem:
		return a.deleteItemForm(ctx, st)
	case ScreenFlagItem:
		return a.flagItemForm(ctx, st)
	case ScreenTopUsers:
		return a.topUsersView(ctx, st)
	default:
		return State{}, fmt.Errorf("unknown screen %d", st.Screen)
	}
}

func (a *App) mainMenu(st State) (State, error) {
	a.banner(st, "E-miti Inventory System")
	fmt.Fprintln(a.out, "  1) Register")
	fmt.Fprintln(a.out, "  2) Login")
	fmt.Fprintln(a.out, "  3) Exit")

	choice, err := a.readLine("> ")
	if err != nil {
		return State{}, err
	}

	switch choice {
	case "1":
		return State{Screen: ScreenRegister}, nil
	case "2":
		return State{Screen: ScreenLogin}, nil
	case "3", "q":
		return State{Screen: ScreenQuit}, nil
	default:
		return State{Screen: ScreenMainMenu, Notice: "Invalid choice"}, nil
	}
}

func (a *App) registerForm(ctx context.Context, st State) (State, error) {
	a.banner(st, "Register")

	username, err := a.readLine("Username: ")
	if err != nil {
		return State{}, err
	}
	password, err := a.readLine("Password: ")
	if err != nil {
		return State{}, err
	}

	fmt.Fprintln(a.out, "Role:")
	for i, role := range model.Roles {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, role)
	}
	choice, err := a.readLine("> ")
	if err != nil {
		return State{}, err
	}
	idx, perr := parseInt(choice)
	if perr != nil || idx < 1 || idx > len(model.Roles) {
		return State{Screen: ScreenMainMenu, Notice: "Please select a role"}, nil
	}
	role := model.Roles[idx-1]

	if username == "" || password == "" {
		return State{Screen: ScreenMainMenu, Notice: "Username and password required"}, nil
	}

	ok, err := auth.Register(ctx, a.creds, username, password, role)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return State{Screen: ScreenMainMenu, Notice: "Username already taken"}, nil
	}
	return State{Screen: ScreenMainMenu, Notice: "Registration successful"}, nil
}

func (a *App) loginForm(ctx context.Context, st State) (State, error) {
	a.banner(st, "Login")

	username, err := a.readLine("Username: ")
	if err != nil {
		return State{}, err
	}
	password, err := a.readLine("Password: ")
	if err != nil {
		return State{}, err
	}

	ok, role, err := auth.Login(ctx, a.creds, username, password)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return State{Screen: ScreenMainMenu, Notice: "Login failed"}, nil
	}

	next := State{Screen: ScreenInventory, Username: username, Role: role}
	if user, err := a.creds.GetUser(ctx, username); err == nil && user != nil {
		next.UserID = user.ID
	}

	if a.sessionPath != "" {
		if err := auth.SaveSession(ctx, a.creds, a.sessionPath, next.UserID, username, role); err != nil {
			slog.Warn("could not save session", "error", err)
		}
	}
	return next, nil
}

func (a *App) inventoryMenu(ctx context.Context, st State) (State, error) {
	a.banner(st, fmt.Sprintf("Welcome back, %s", st.Username))

	items, err := a.inv.GetInventory(ctx, st.Username)
	if err != nil {
		return State{}, err
	}
	renderInventory(a.out, items, a.now())

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "  1) Add Item")
	fmt.Fprintln(a.out, "  2) Update Item")
	fmt.Fprintln(a.out, "  3) Delete Item")
	fmt.Fprintln(a.out, "  4) Flag Item")
	fmt.Fprintln(a.out, "  5) Top Users")
	fmt.Fprintln(a.out, "  6) Logout")
	fmt.Fprintln(a.out, "  7) Exit")

	choice, err := a.readLine("> ")
	if err != nil {
		return State{}, err
	}

	switch choice {
	case "1":
		return st.at(ScreenAddItem, ""), nil
	case "2":
		return st.at(ScreenUpdateItem, ""), nil
	case "3":
		return st.at(ScreenDeleteItem, ""), nil
	case "4":
		return st.at(ScreenFlagItem, ""), nil
	case "5":
		return st.at(ScreenTopUsers, ""), nil
	case "6":
		if a.sessionPath != "" {
			auth.ClearSession(a.sessionPath)
		}
		slog.Info("user logged out", "user", st.Username)
		return st.loggedOut("Logged out"), nil
	case "7", "q":
		return State{Screen: ScreenQuit}, nil
	default:
		return st.at(ScreenInventory, "Invalid choice"), nil
	}
}

// banner draws the screen title and any pending notice.
func (a *App) banner(st State, title string) {
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "=== %s ===\n", title)
	if st.Notice != "" {
		fmt.Fprintf(a.out, "* %s\n", st.Notice)
	}
}

// readLine prompts and reads one line, trimming surrounding whitespace.
func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
