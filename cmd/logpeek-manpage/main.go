package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/logpeek/cmd/logpeek"
	"github.com/arthur-debert/logpeek/internal/version"
)

func main() {
	rootCmd := logpeek.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "LOGPEEK",
		Section: "1",
		Source:  "logpeek " + version.Version,
		Manual:  "logpeek manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
