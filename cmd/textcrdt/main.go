// Command textcrdt is a thin demo host over the document façade: it
// keeps one document's oplog in a JSON file on disk (the format
// oplog.Encode/Decode produce) and exposes insert/delete/text/
// merge/check/dot/lint as subcommands. It carries no CRDT logic of
// its own. Everything it does is a direct call into document.Doc,
// oplog, or dot.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
