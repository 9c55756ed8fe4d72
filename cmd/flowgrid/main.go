package main

import "github.com/mfkiwl/flowgrid/cmd/flowgrid/commands"

func main() {
	commands.Execute()
}
