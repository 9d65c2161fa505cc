package main

import (
	"winctl/cmd"
	_ "winctl/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
