package main

import "github.com/rfernando-oulu/eComSync/cmd/ecomsync/commands"

func main() {
	commands.Execute()
}
