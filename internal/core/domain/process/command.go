package process

import (
	"fmt"
	"strings"
)

// Command is an executable plus arguments to run as a child process.
// The child always inherits the parent's working directory and environment.
type Command struct {
	executable string
	args       []string
}

// NewCommand creates a new Command value object
func NewCommand(executable string, args []string) (Command, error) {
	if executable == "" {
		return Command{}, fmt.Errorf("executable cannot be empty")
	}

	return Command{
		executable: executable,
		args:       append([]string(nil), args...),
	}, nil
}

// Executable returns the command executable
func (c Command) Executable() string {
	return c.executable
}

// Args returns a copy of the command arguments
func (c Command) Args() []string {
	return append([]string(nil), c.args...)
}

// String returns a string representation of the command
func (c Command) String() string {
	if len(c.args) == 0 {
		return c.executable
	}
	return fmt.Sprintf("%s %s", c.executable, strings.Join(c.args, " "))
}

// FullCommandLine returns the complete command line including executable and args
func (c Command) FullCommandLine() []string {
	result := make([]string, 0, len(c.args)+1)
	result = append(result, c.executable)
	result = append(result, c.args...)
	return result
}
