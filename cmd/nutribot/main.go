package main

import (
	"fmt"
	"os"

	"github.com/HaRin2806/nutribot-cli/internal/commands"
	"github.com/HaRin2806/nutribot-cli/internal/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		ui.PrintError("%s", err.Error())
		fmt.Println("\nRun 'nutribot --help' for usage.")
		os.Exit(1)
	}
}
