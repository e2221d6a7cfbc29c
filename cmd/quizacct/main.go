package main

import "github.com/mcoot/quizgame-accounts/internal/cli"

func main() {
	cli.Execute()
}
