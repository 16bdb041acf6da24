package main

import "go.minekube.com/cmdarg/pkg/cmd/cmdarg"

func main() {
	cmdarg.Execute()
}
