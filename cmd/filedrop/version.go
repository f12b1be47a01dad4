package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sir_venger/filedrop/internal/cli"
)

func versionMain(_ *cobra.Command, _ []string) error {
	fmt.Println(cli.Version)
	return nil
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run:   cli.Mainify(versionMain),
}
