// Command enumily inspects enums declared in a catalog file.
package main

import "github.com/mesh-intelligence/enumily/internal/cli"

func main() {
	cli.Execute()
}
