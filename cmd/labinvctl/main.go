// Command labinvctl manages the lab inventory from the terminal, against either
// the labinv API or a local document store.
package main

import (
	"os"

	"github.com/vbonduro/labinv/internal/config"
)

func main() {
	if err := run(config.Load(), nil, os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}
