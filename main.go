package main

import "github.com/hmmnet/hmmnet/cmd"

func main() {
	cmd.Execute()
}
