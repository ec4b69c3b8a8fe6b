package cli

import (
	"context"
	"os"
)

// Chat asks the diabetes assistant a single question and prints the reply.
// An empty question cancels the command.
func (a *App) Chat(ctx context.Context) error {
	question, err := getSimpleText(a.reader, "Ask the diabetes assistant (empty to cancel)", os.Stdout)
	if err != nil {
		return err
	}
	if question == "" {
		return nil
	}

	answer, err := a.chat.Ask(ctx, question)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(answer)
	return nil
}
