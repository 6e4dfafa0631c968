package main

import "interact/cli"

func main() {
	cli.Execute()
}
