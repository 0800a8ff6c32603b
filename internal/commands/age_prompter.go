package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// surveyAgePrompter asks for the learner's age on the terminal. Interrupting
// the prompt dismisses it without an answer.
type surveyAgePrompter struct{}

func (surveyAgePrompter) PromptAge(ctx context.Context) (int, bool, error) {
	var raw string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Learner's age (%d-%d):", types.MinAge, types.MaxAge),
	}
	err := survey.AskOne(prompt, &raw, survey.WithValidator(validAgeInput))
	if errors.Is(err, terminal.InterruptErr) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false, err
	}
	return age, true, nil
}

func validAgeInput(ans interface{}) error {
	raw, _ := ans.(string)
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !types.ValidAge(age) {
		return fmt.Errorf("enter a whole number from %d to %d", types.MinAge, types.MaxAge)
	}
	return nil
}
