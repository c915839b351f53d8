package main

import (
	"context"
	"os"

	"github.com/arthur-debert/logpeek/cmd/logpeek"
)

func main() {
	os.Exit(logpeek.Execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
