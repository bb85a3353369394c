package config

import (
	"errors"
	"fmt"
	"net"
)

// The tick rate ceiling keeps poll intervals above scheduler resolution;
// anything past 240 Hz only burns CPU on identical reads.
const maxTickRate = 240

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGame(); err != nil {
		return err
	}
	if err := c.validateTimer(); err != nil {
		return err
	}
	if err := c.validateDaemon(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateGame() error {
	if c.Game.ProcessName == "" {
		return errors.New("game.process_name must be set")
	}
	return nil
}

func (c *Config) validateTimer() error {
	host, port, err := net.SplitHostPort(c.Timer.Address)
	if err != nil {
		return fmt.Errorf("timer.address must be host:port: %w", err)
	}
	if host == "" || port == "" {
		return errors.New("timer.address must include both host and port")
	}
	return nil
}

func (c *Config) validateDaemon() error {
	if c.Daemon.TickRate > maxTickRate {
		return fmt.Errorf("daemon.tick_rate must be at most %d", maxTickRate)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
