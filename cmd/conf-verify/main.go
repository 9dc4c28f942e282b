package main

import "github.com/pfrederiksen/conf-verify/internal/cli"

func main() {
	cli.Execute()
}
