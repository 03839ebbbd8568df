package main

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Print("iclc version: ")
			valueColor.Println(Version)

			titleColor.Print("git commit: ")
			valueColor.Println(GitCommit)

			titleColor.Print("build date: ")
			valueColor.Println(BuildDate)

			titleColor.Print("go version: ")
			valueColor.Println(runtime.Version())
		},
	}
}
