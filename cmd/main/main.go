package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pysugar/cisample/cmd/base"
	_ "github.com/pysugar/cisample/cmd/distro"
)

var (
	versionCmd = &cobra.Command{
		Use:   `version`,
		Short: "Show current version of cisample",
		Long:  `Version prints the build information for cisample executables`,
		Run: func(cmd *cobra.Command, args []string) {
			version := base.VersionStatement()
			for _, s := range version {
				fmt.Println(s)
			}
		},
	}
)

func main() {
	base.AddSubCommands(versionCmd)

	base.Run()
}
