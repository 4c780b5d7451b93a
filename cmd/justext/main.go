package main

import cmd "github.com/rohmanhakim/justext/internal/cli"

func main() {
	cmd.Execute()
}
