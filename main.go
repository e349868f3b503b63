package main

import "github.com/csweichel/plexfs/cmd"

func main() {
	cmd.Execute()
}
