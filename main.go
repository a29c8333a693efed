package main

import (
	"pifand/cmd"
)

func main() {
	cmd.Execute()
}
