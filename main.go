package main

import "github.com/justitia-lab/shardscope/cmd"

func main() {
	cmd.Execute()
}
