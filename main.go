package main

import "embedkit/cmd"

func main() {
	cmd.Execute()
}
