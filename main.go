package main

import "github.com/claimloom/claimloom/cmd"

func main() {
	cmd.Execute()
}
