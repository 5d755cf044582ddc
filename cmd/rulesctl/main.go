// Command rulesctl compiles and runs declarative product-data rule
// documents against tabular product data. It exposes three subcommands —
// compile, validate, run — mirroring the compiler and runtime library
// entry points.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
