package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"

	"ccu8pwm/core"
	"ccu8pwm/host/monitor"
	"ccu8pwm/host/serial"
)

// The firmware prints over ARM semihosting. OpenOCD forwards that output to
// a TCP port with "arm semihosting_redirect tcp 4445 stdio".
var (
	addr    = "localhost:4445"
	device  = ""
	baud    = flag.Int("baud", serial.DefaultBaud, "Baud rate when reading a serial device")
	poll    = flag.Duration("poll", 100*time.Millisecond, "Read timeout of one poll")
	timeout = flag.Duration("timeout", 10*time.Second, "How long to wait for the PWM to come up")
)

func init() {
	if val := os.Getenv("CCU8_MONITOR_ADDR"); val != "" {
		addr = val
	}
	if val := os.Getenv("CCU8_MONITOR_DEVICE"); val != "" {
		device = val
	}
	flag.StringVar(&addr, "addr", addr, "TCP address the debugger forwards semihosting output to")
	flag.StringVar(&device, "device", device, "Serial device to read instead of -addr")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		glog.Exitf("%v", err)
	}
	fmt.Println(core.DiagnosticLine)
}

// open connects to the debug stream: the serial device when one is named,
// the semihosting TCP port otherwise
func open() (serial.Port, string, error) {
	if device != "" {
		cfg := serial.DefaultConfig(device)
		cfg.Baud = *baud
		cfg.ReadTimeout = int(poll.Milliseconds())
		port, err := serial.Open(cfg)
		return port, fmt.Sprintf("%s at %d baud", device, cfg.Baud), err
	}
	port, err := serial.Dial(addr, *poll)
	return port, addr, err
}

func run() error {
	port, name, err := open()
	if err != nil {
		return err
	}
	defer port.Close()

	// drop whatever the board printed before we attached
	if err := port.Flush(); err != nil {
		glog.Warningf("flush %s: %v", name, err)
	}
	glog.Infof("watching %s", name)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	w := monitor.NewWatcher(port)
	w.OnLine = func(line string) { glog.V(1).Info(line) }
	return w.Wait(ctx, core.DiagnosticLine)
}
