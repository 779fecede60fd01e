package main

import (
	"os"

	"github.com/lost-stats/lostmd/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
