package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/idilsaglam/tada/internal/cli"
)

func main() {
	// A .env next to the invocation may carry TADA_* settings.
	_ = godotenv.Load()

	code := cli.Execute(os.Args[1:], os.Stdout, os.Stderr)
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
