package main

import "github.com/ValentinKolb/wlconn/cmd"

func main() {
	cmd.Execute()
}
