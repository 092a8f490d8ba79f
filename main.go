package main

import "github.com/folio-site/folio/backend/cmd"

func main() {
	cmd.Execute()
}
