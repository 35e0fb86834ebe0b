package main

import "github.com/fedibridge/mstdn-rss2bsky-post/cmd"

func main() {
	cmd.Execute()
}
