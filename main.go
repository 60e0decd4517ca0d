package main

import "minersim/cmd"

func main() {
	cmd.Execute()
}
