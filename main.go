package main

import (
	"github.com/lkwhite/tRNAs-in-space/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
