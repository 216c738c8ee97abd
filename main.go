/*
Copyright © 2026 PGLAYOUT AUTHORS
*/
package main

import "pglayout/cmd"

func main() {
	cmd.Execute()
}
