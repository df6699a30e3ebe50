package main

import "github.com/extmeta/plugin-packager/cmd/plugin-packager/cmd"

func main() {
	cmd.Execute()
}
