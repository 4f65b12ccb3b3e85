package main

import (
	"github.com/YangQing-Lin/aichat-setup-cli/cmd"
)

func main() {
	cmd.Execute()
}
