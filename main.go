package main

import "github.com/mvessman/tracklog/cmd"

func main() {
	cmd.Execute()
}
