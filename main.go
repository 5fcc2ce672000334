package main

import "github.com/jsphweid/chordseq/cmd"

func main() {
	cmd.Execute()
}
