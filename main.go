// main is the entry point for the wrapped CLI.
package main

import (
	"github.com/huangsam/wrapped/cmd"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/internal/session"
)

func main() {
	err := cmd.Execute()
	session.CloseStore()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Cannot stop profiling", perr)
	}
	if err != nil {
		contract.LogFatal("Cannot run command", err)
	}
}
