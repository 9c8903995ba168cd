package main

import "github.com/w154594742/secretgate/cmd/secretgate"

func main() { secretgate.Execute() }
