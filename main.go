package main

import "github.com/Tiliavir/pet-assistant/cmd"

func main() {
	cmd.Execute()
}
