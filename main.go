package main

import "github.com/kozaktomas/photopdf/cmd"

func main() {
	cmd.Execute()
}
