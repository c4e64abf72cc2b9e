// cmd/mitoseqfix/main.go
package main

import (
	"mitoseqfix/internal/app"
	"mitoseqfix/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
