package main

import "github.com/pfrederiksen/padel-events/internal/cli"

var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
