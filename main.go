package main

import (
	"github.com/OpenCHAMI/pductl/cmd"
)

func main() {
	cmd.Execute()
}
