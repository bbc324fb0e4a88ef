/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package main

import (
	_ "time/tzdata"

	"github.com/diagridio/catai-scheduler/cmd"
)

func main() {
	cmd.Execute()
}
