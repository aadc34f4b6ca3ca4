package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeToggle Type = "toggle"
	TypeUp     Type = "up"
	TypeDown   Type = "down"
	TypeDelete Type = "delete"
	TypeClear  Type = "clear"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Note string
}

// IDArgs carries the id argument as typed. Handlers decide what an
// unparsable id means.
type IDArgs struct {
	Raw string
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	ID   *IDArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, raw[len(parts[0]):])
	case TypeToggle, TypeUp, TypeDown, TypeDelete:
		return parseID(input, Type(head), args)
	case TypeClear:
		if len(args) != 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear takes no arguments"}
		}
		return Command{Type: TypeClear, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd keeps the note as typed after the verb, minus surrounding
// whitespace, so it matches what the add input line would store.
func parseAdd(raw string, rest string) (Command, error) {
	note := strings.TrimSpace(rest)
	if note == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a note"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Note: note}}, nil
}

func parseID(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires an item id", typ)}
	}
	return Command{Type: typ, Raw: raw, ID: &IDArgs{Raw: args[0]}}, nil
}
