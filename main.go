package main

import "github.com/contractly/timesheet-management/cmd"

func main() {
	cmd.Execute()
}
