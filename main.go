package main

import "fnum/cmd"

func main() {
	cmd.Execute()
}
