package main

import "github.com/stacktrail/guardrail/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
