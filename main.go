package main

import "github.com/contextkeeper/contextkeeper/cmd"

func main() {
	cmd.Execute()
}
