package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message...>",
		Short: "Send a free-form message to the assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			message := strings.Join(args, " ")

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			resp, err := app.Client.Chat(ctx, message)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(resp)
			}
			output.Println(resp.Reply)
			return nil
		},
	}
}
