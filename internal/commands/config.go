package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/HaRin2806/nutribot-cli/internal/config"
	"github.com/HaRin2806/nutribot-cli/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "show or change local settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "show the current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "change one configuration value",
	Long: `Change one configuration value. Keys: server, timeout-seconds,
storage-backend (bbolt or file), log-level.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("server:          %s\n", cfg.Server.URL)
	fmt.Printf("timeout-seconds: %d\n", cfg.Server.TimeoutSeconds)
	fmt.Printf("storage-backend: %s\n", cfg.Storage.Backend)
	fmt.Printf("log-level:       %s\n", cfg.Logging.Level)
	fmt.Printf("config file:     %s\n", path)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	switch key {
	case "server":
		cfg.Server.URL = value
	case "timeout-seconds":
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds <= 0 {
			return fmt.Errorf("%s expects a positive number", key)
		}
		cfg.Server.TimeoutSeconds = seconds
	case "storage-backend":
		if value != "bbolt" && value != "file" {
			return fmt.Errorf("%s expects bbolt or file", key)
		}
		cfg.Storage.Backend = value
	case "log-level":
		cfg.Logging.Level = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	ui.PrintSuccess("Saved %s", key)
	return nil
}
