package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// getStatus renders the prompt decoration: the logged-in user's name, if any.
func (a *App) getStatus() string {
	st := a.manager.Snapshot()
	if st.Authenticated && st.User != nil {
		return fmt.Sprintf("(%s)", st.User.Name)
	}
	return ""
}

// Root hydrates the session from local storage and runs the interactive loop
// until the user exits or stdin is closed.
func (a *App) Root(ctx context.Context) {

	printlnFn("Welcome to GlucoTrack CLI (type 'help' for commands)")

	a.manager.Hydrate(ctx)

	st := a.manager.Snapshot()
	switch {
	case st.Err != "":
		printlnFn(st.Err)
	case st.Authenticated && st.User != nil:
		printlnFn(fmt.Sprintf("Welcome back, %s!", st.User.Name))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
