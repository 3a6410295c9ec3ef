package main

import "github.com/fatali-fataliyev/event_finance/cmd"

func main() {
	cmd.Execute()
}
