// cmd/mitoseqfix-eval/main.go
package main

import (
	"mitoseqfix/internal/appshell"
	"mitoseqfix/internal/evalapp"
)

func main() { appshell.Main(evalapp.RunContext) }
