package main

import "github.com/frahmantamala/payment-processor/cmd"

func main() {
	cmd.Execute()
}
