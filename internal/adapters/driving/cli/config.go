package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage docscout configuration",
	Long: `Reads and writes settings in the docscout config file.

Useful keys:
  oracle.provider     AI provider: openai or anthropic
  openai.api_key      OpenAI API key (env OPENAI_API_KEY takes precedence)
  openai.model        chat model override
  anthropic.api_key   Anthropic API key (env ANTHROPIC_API_KEY takes precedence)
  anthropic.model     model override`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newConfigStore()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		val, ok := store.Get(args[0])
		if !ok {
			return fmt.Errorf("key %q is not set", args[0])
		}
		cmd.Printf("%v\n", val)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newConfigStore()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := store.Set(args[0], args[1]); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		cmd.Printf("%s set\n", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
