package main

import "github.com/KaramelBytes/surveyloom/cmd"

func main() {
	cmd.Execute()
}
