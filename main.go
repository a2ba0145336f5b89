package main

import "github.com/mfigueredo/smarket/cmd"

func main() {
	cmd.Execute()
}
