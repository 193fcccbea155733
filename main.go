package main

import "github.com/pipewatch/pipewatch/cmd"

func main() {
	cmd.Execute()
}
