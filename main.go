package main

import "par-manager/cmd"

func main() {
	cmd.Execute()
}
