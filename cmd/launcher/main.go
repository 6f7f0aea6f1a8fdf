package main

import "github.com/FrogdreamStudios/launcher/cmd/launcher/cmd"

func main() {
	cmd.Execute()
}
