package main

import "github.com/Alturino/tourism/cmd"

func main() {
	cmd.Start()
}
