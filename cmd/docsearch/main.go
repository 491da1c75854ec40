// Command docsearch is the CLI entrypoint for the local documentation
// retrieval service.
package main

import "github.com/mvp-joe/docsearch/internal/cli"

func main() {
	cli.Execute()
}
