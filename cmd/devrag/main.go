package main

import "github.com/devrag/devrag/internal/cli"

func main() {
	cli.Execute()
}
