package main

import "chorale/cmd"

func main() {
	cmd.Execute()
}
