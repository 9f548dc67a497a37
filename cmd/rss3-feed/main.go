// rss3-feed prints the rendered RSS3 activity feed of one or more accounts
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rss3-feed failed %v\n", err)
		os.Exit(1)
	}
}
