package main

import "rinkbook/cmd"

func main() {
	cmd.Execute()
}
