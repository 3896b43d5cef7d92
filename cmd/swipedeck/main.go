package main

import "github.com/jask/swipedeck/internal/cli"

func main() {
	cli.Execute()
}
