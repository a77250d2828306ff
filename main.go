package main

import "kzone-booking-backend/cmd"

func main() {
	cmd.Run()
}
