package main

import "todopanel/cmd/todopanel-cli/cmd"

func main() {
	cmd.Execute()
}
