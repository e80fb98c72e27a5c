package main

import "codex/cmd"

func main() {
	cmd.Execute()
}
