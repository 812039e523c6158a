package main

import (
	api "github.com/5pponent/diary-server/api"
)

func main() {
	api.Run()
}
