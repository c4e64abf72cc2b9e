// cmd/mitoseqfix-serve/main.go
package main

import (
	"mitoseqfix/internal/appshell"
	"mitoseqfix/internal/serveapp"
)

func main() { appshell.Main(serveapp.RunContext) }
