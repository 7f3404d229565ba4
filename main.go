package main

import "github.com/mentormatch/apiserver/cmd"

func main() {
	cmd.Execute()
}
