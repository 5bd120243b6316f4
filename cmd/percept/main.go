package main

import "github.com/percept-vision/percept/cmd/percept/cmd"

func main() {
	cmd.Execute()
}
