package main

import "wayforpay/cmd"

func main() {
	cmd.Execute()
}
