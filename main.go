package main

import (
	cmd "github.com/getzep/contactner/cmd/contactner"
)

func main() {
	cmd.Execute()
}
