package main

import (
	"os"

	"github.com/chris-regnier/kindctl/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
