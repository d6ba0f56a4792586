package main

import (
	"github.com/spf13/cobra"
)

const app = "ats-scanner"

func newRootCommand() *cobra.Command {
	var configFlag string
	var debugFlag bool
	var jsonLogFlag bool

	ctx := newCommandContext(&configFlag, &debugFlag, &jsonLogFlag)

	rootCmd := &cobra.Command{
		Use:           app,
		Short:         "ats-scanner compares resumes with job descriptions the way keyword-based ATS filters do",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "a config file (default is ats-scanner.yaml in current directory)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogFlag, "json-log", "j", false, "json format for logging")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
