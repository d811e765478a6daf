package logging

import "context"

type contextKey string

const (
	commandKey  contextKey = "command"
	todoFileKey contextKey = "todo_file"
)

// WithCommand adds the running command name to the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// WithTodoFile adds the path of the todo file being worked on to the context.
func WithTodoFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, todoFileKey, path)
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}

// GetTodoFile retrieves the todo file path from the context.
// Returns empty string if not present.
func GetTodoFile(ctx context.Context) string {
	if path, ok := ctx.Value(todoFileKey).(string); ok {
		return path
	}
	return ""
}
