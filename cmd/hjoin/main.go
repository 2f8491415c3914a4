// Command hjoin joins records of two delimited text files using the
// hash-join strategy: the right file is read eagerly into an
// in-memory multimap, the left file streams through it one record at
// a time. Use this over mjoin when the inputs are not pre-sorted by
// join key, or when the right file is small enough to hold in memory.
package main

import "github.com/canonica-labs/joinkit/internal/joincli"

func main() {
	app := joincli.App{
		Name:          "hjoin",
		Short:         "Join records of two files using the hash-join strategy.",
		StrategyLabel: "hash",
		AllowTypeTags: false,
		DefaultField2: "2",
		Engine:        joincli.RunHash,
	}
	app.Main()
}
