package main

import (
	"os"

	flashpipecmder "github.com/quizwire/flashpipe/cmd/flashpipe"
)

func main() {
	cmd := flashpipecmder.NewFlashpipeCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
