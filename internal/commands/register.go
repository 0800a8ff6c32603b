package commands

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/ui"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "create a Nutribot account",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	var answers struct {
		Name     string
		Email    string
		Password string
		Gender   string
	}
	questions := []*survey.Question{
		{Name: "name", Prompt: &survey.Input{Message: "Name:"}, Validate: survey.Required},
		{Name: "email", Prompt: &survey.Input{Message: "Email:"}, Validate: survey.Required},
		{Name: "password", Prompt: &survey.Password{Message: "Password:"}, Validate: survey.MinLength(6)},
		{Name: "gender", Prompt: &survey.Select{
			Message: "Gender:",
			Options: []string{"female", "male", "other"},
			Default: "other",
		}},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}

	resp, err := rt.api.Register(ctx, client.RegisterRequest{
		Name:     answers.Name,
		Email:    answers.Email,
		Password: answers.Password,
		Gender:   answers.Gender,
	})
	if err != nil {
		ui.PrintError("registration failed: %v", err)
		return fmt.Errorf("registration failed")
	}

	name := answers.Name
	if resp.User != nil && resp.User.Name != "" {
		name = resp.User.Name
	}
	ui.PrintSuccess("Account created for %s", name)
	ui.PrintInfo("Log in with 'nutribot login -e %s'", answers.Email)
	return nil
}
