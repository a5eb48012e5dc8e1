package main

import "github.com/moyu-x/vibecleaner/cmd"

func main() {
	cmd.Execute()
}
