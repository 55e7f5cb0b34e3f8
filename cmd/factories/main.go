// factories CLI - resolve, scaffold and audit request and resource factories
package main

import (
	"os"

	"github.com/getmockd/factories/pkg/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
