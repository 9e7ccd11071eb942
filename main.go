package main

import "github.com/shuchit-srx/stoory-backend-sub003/config"

func main() {
	config.RunServer()
}
