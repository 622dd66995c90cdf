package main

import "objectstore/cmd"

func main() {
	cmd.Execute()
}
