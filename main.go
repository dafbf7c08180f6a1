package main

import "github.com/vietdv277/irsstat/cmd"

func main() {
	cmd.Execute()
}
