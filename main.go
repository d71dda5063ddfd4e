package main

import (
	"os"

	"alanc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
