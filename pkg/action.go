package pkg

type Action string

const (
	ActionNewGame Action = "New Game"
	ActionExit    Action = "Exit"
)

// Console commands, typed instead of a square.
const (
	CommandNew  = "new"
	CommandQuit = "quit"
	CommandShow = "board"
)
