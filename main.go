package main

import "github.com/xirothedev/agent-skills-sub000/cmd"

func main() {
	cmd.Execute()
}
