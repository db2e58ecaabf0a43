package main

import "github.com/frontandrew/sales/cmd/salesctl/commands"

func main() {
	commands.Execute()
}
