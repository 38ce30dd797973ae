package app

// Screen identifies one screen of the terminal UI.
type Screen int

// Screens, in rough navigation order.
const (
	ScreenMainMenu Screen = iota
	ScreenRegister
	ScreenLogin
	ScreenInventory
	ScreenAddItem
	ScreenUpdateItem
	ScreenDeleteItem
	ScreenFlagItem
	ScreenTopUsers
	ScreenQuit
)

// State carries everything a screen handler needs and everything it may
// change. Handlers take a State and return the next one; there is no
// ambient UI state.
type State struct {
	Screen   Screen
	UserID   int64
	Username string
	Role     string

	// Notice is a one-shot message rendered at the top of the next screen.
	Notice string
}

// loggedOut returns the state after leaving an authenticated session.
func (s State) loggedOut(notice string) State {
	return State{Screen: ScreenMainMenu, Notice: notice}
}

// at returns a copy of s pointed at the given screen, keeping the session.
func (s State) at(screen Screen, notice string) State {
	s.Screen = screen
	s.Notice = notice
	return s
}
