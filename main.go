package main

import "github.com/ekrafft/url-check/cmd"

func main() {
	cmd.Execute()
}
