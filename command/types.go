package command

import "context"

type Command string

const (
	Greet  Command = "greet"
	Start  Command = "start"
	Cancel Command = "cancel"
	None   Command = "none"
)

type Parser interface {
	ParseCommand(ctx context.Context, input string) (Command, error)
}
