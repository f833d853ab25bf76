package main

import "github.com/ellytic/onboard/internal/cli"

func main() {
	cli.Execute()
}
