package cli

import (
	"context"
	"fmt"
	"strings"
)

// Run reads commands until EOF, "exit" or ctx cancellation.
// Command errors are reported by the commands themselves and never stop
// the loop.
func (a *App) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(a.out, "skillmarket [%s]> ", a.status())

		line, err := a.reader.ReadString('\n')
		fields := strings.Fields(line)
		if len(fields) == 0 {
			if err != nil {
				fmt.Fprintln(a.out)
				return
			}
			continue
		}

		switch cmd := fields[0]; cmd {
		case "help", "?":
			fmt.Fprintln(a.out, helpText(a.isLoggedIn()))
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami", "profile":
			_ = a.Whoami(ctx)
		case "update":
			_ = a.Update(ctx)
		case "reload":
			_ = a.Reload(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
