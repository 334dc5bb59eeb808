package main

import "invsys/go_backend/internal/app"

func main() {
	app.Run()
}
