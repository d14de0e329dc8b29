package main

import "github.com/healthsync/healthsync/cmd"

func main() {
	cmd.Execute()
}
