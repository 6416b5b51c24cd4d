package main

import (
	"gatehouse/app"
)

func main() {
	app.New(nil).Run()
}
