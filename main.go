package main

import "github.com/shandysiswandi/gofindway/internal/cli"

func main() {
	cli.Execute()
}
