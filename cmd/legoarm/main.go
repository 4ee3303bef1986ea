package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Run      RunCommand      `command:"run" description:"Calibrate and drive the arm on EV3 hardware"`
	Simulate SimulateCommand `command:"simulate" alias:"sim" description:"Drive a simulated arm in a terminal UI"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Keypad-driven controller for a three-axis LEGO robotic arm"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
