package main

import "docgraph/cmd/docgraph/cmd"

func main() {
	cmd.Execute()
}
