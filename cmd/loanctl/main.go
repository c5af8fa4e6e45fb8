// Command loanctl browses the loan history and reconciles partial returns
// against the loan service.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}
