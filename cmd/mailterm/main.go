package main

import "github.com/nvu/mailterm/internal/cli"

func main() {
	cli.Execute()
}
