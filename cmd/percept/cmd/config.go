package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/percept-vision/percept/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [flags]",
	Short: "Write a configuration file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if err := config.GenerateDefaultConfigFile(output); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		if output == "" {
			output = "percept.yaml"
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", output)
		return err
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the configuration file search paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range config.GetConfigSearchPaths() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)

	configInitCmd.Flags().StringP("output", "o", "", "output file (default percept.yaml)")
}
