package distro

import "github.com/pysugar/cisample/cmd/base"

func init() {
	base.AddSubCommands(serveCmd)
	base.SetDefaultCommand(serveCmd)
}
