package main

import (
	"os"

	erniechat "github.com/ernie-go/erniechat"
	. "github.com/stevegt/goadapt"
)

// main simply calls the erniechat package's Cli() function
func main() {
	config := erniechat.NewCliConfig()
	rc, err := erniechat.Cli(os.Args[1:], config)
	Ck(err)
	os.Exit(rc)
}
