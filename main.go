package main

import "github.com/yohandiaz/worklog-app/cmd"

func main() {
	cmd.Execute()
}
