package main

import "github.com/stefanriegel/infoblox-UDDI-zonesync/cmd"

func main() {
	cmd.Execute()
}
