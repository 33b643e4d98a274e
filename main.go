package main

import "github.com/jsphweid/voicelead/cmd"

func main() {
	cmd.Execute()
}
