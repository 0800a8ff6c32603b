package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/HaRin2806/nutribot-cli/internal/ui"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "end the current session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.loadToken(ctx)
	if rt.api.Token() != "" {
		// Server-side invalidation is best effort; local state is cleared
		// either way.
		if err := rt.api.Logout(ctx); err != nil {
			rt.log.Warn().Err(err).Msg("server logout failed")
		}
	}
	if err := rt.repo.Credentials().Clear(ctx); err != nil {
		ui.PrintWarning("could not clear stored session: %v", err)
		return err
	}
	ui.PrintSuccess("Logged out")
	return nil
}
