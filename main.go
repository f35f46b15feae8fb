package main

import (
	"github.com/awnumar/memguard"
	"github.com/tigerwill90/ndnkdf/command"
	"os"
)

func main() {
	memguard.CatchInterrupt()
	memguard.SafeExit(command.Run(os.Args))
}
