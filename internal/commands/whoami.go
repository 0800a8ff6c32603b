package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HaRin2806/nutribot-cli/internal/ui"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "show the logged-in account",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	user, err := rt.requireAuth(ctx)
	if err != nil {
		return err
	}

	ui.PrintBold(user.Name)
	fmt.Printf("Email: %s\n", user.Email)
	if user.IsAdmin {
		fmt.Println("Role:  admin")
	}
	if age, err := rt.repo.Preferences().Age(ctx); err == nil && age > 0 {
		fmt.Printf("Age preference: %d\n", age)
	}
	return nil
}
