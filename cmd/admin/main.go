package main

import "github.com/nc-news-api/cmd/admin/commands"

func main() {
	commands.Execute()
}
