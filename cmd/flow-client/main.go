package main

import (
	"github.com/onflow/flow-client-go/cmd/flow-client/cmd"
)

func main() {
	cmd.Execute()
}
