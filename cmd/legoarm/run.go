package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/huh"
	"github.com/joho/godotenv"

	"github.com/mmp819/robotic-lego-arm/pkg/arm"
	"github.com/mmp819/robotic-lego-arm/pkg/brick/ev3"
)

type RunCommand struct {
	Yes bool `long:"yes" short:"y" description:"Skip the calibration confirmation prompt"`
}

// envOr returns the value of the environment variable key, or fallback when
// it is unset. A .env file next to the binary is honored.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *RunCommand) Execute(args []string) error {
	// Optional overrides for bench setups with different wiring.
	_ = godotenv.Load()
	rotationPort := envOr("LEGOARM_ROTATION_PORT", "outC")
	elevationPort := envOr("LEGOARM_ELEVATION_PORT", "outB")
	clawPort := envOr("LEGOARM_CLAW_PORT", "outA")
	colorPort := envOr("LEGOARM_COLOR_PORT", "in1")
	touchPort := envOr("LEGOARM_TOUCH_PORT", "in2")

	if !c.Yes {
		var ready bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Calibration moves all three motors through their full travel.").
				Description("Make sure the workspace around the arm is clear.").
				Affirmative("Start").
				Negative("Abort").
				Value(&ready),
		))
		if err := form.Run(); err != nil || !ready {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
	}

	fail := func(err error) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rotation, err := ev3.OpenMotor(rotationPort, ev3.LargeMotorDriver)
	if err != nil {
		fail(err)
	}
	elevation, err := ev3.OpenMotor(elevationPort, ev3.LargeMotorDriver)
	if err != nil {
		fail(err)
	}
	claw, err := ev3.OpenMotor(clawPort, ev3.MediumMotorDriver)
	if err != nil {
		fail(err)
	}
	color, err := ev3.OpenSensor(colorPort, ev3.ColorSensorDriver)
	if err != nil {
		fail(err)
	}
	touch, err := ev3.OpenSensor(touchPort, ev3.TouchSensorDriver)
	if err != nil {
		fail(err)
	}
	buttons, err := ev3.OpenButtons()
	if err != nil {
		fail(err)
	}
	leds, err := ev3.OpenLED()
	if err != nil {
		fail(err)
	}
	lcd, err := ev3.OpenDisplay()
	if err != nil {
		fail(err)
	}
	defer lcd.Close()

	ctrl := arm.New(arm.Config{
		Rotation:  rotation,
		Elevation: elevation,
		Claw:      claw,
		Color:     color,
		Touch:     touch,
		Buttons:   buttons,
		LEDs:      leds,
		Display:   lcd,
	})

	go func() {
		for msg := range ctrl.Logs() {
			fmt.Fprintln(os.Stderr, msg)
		}
	}()

	// SIGINT behaves like the Back key.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := ctrl.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nil
}
