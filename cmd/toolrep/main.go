package main

import "github.com/hernandezlab/toolrep/internal/cli"

func main() {
	cli.Execute()
}
