package console

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func Exit(code int, msg string, args ...interface{}) cli.ExitCoder {
	return cli.Exit(fmt.Sprintf(msg, args...), code)
}

// Fail wraps the common "context: red error" exit used by every command.
func Fail(msg string, err error) cli.ExitCoder {
	return Exit(1, "%s: %s", msg, Red(err))
}
