// Command mjoin joins records of two delimited text files using the
// merge-join strategy: both files must already be sorted ascending by
// join key, with each key confined to one contiguous run per file.
// Use this over hjoin when both inputs are pre-sorted and may be too
// large to build an in-memory index from either side. Unlike hjoin,
// the -1/-2 field lists accept -i/-u type tags for numeric key
// comparison.
package main

import "github.com/canonica-labs/joinkit/internal/joincli"

func main() {
	app := joincli.App{
		Name:          "mjoin",
		Short:         "Join records of two sorted files using the merge-join strategy.",
		StrategyLabel: "merge",
		AllowTypeTags: true,
		DefaultField2: "1",
		Engine:        joincli.RunMerge,
	}
	app.Main()
}
