// Command csim replays valgrind memory traces against a simulated
// set-associative cache with LRU replacement.
package main

import "github.com/sarchlab/cachesim/csim/cmd"

func main() {
	cmd.Execute()
}
