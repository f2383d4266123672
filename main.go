package main

import "github.com/jsphweid/bopwire/cmd"

func main() {
	cmd.Execute()
}
