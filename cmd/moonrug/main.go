package main

import (
	"github.com/rfallows/moonrug/internal/cli"
)

func main() {
	cli.Execute()
}
