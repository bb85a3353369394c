package config

const (
	defaultProcessName    = "SeaOfStars.exe"
	defaultTimerAddress   = "localhost:16834"
	defaultDialTimeout    = 2
	defaultCommandTimeout = 1
	defaultTickRate       = 60
	defaultAttachInterval = 5
	defaultStateDir       = "~/.local/share/starsplit"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Game: Game{
			ProcessName: defaultProcessName,
		},
		Timer: Timer{
			Address:        defaultTimerAddress,
			DialTimeout:    defaultDialTimeout,
			CommandTimeout: defaultCommandTimeout,
		},
		Splits: Splits{
			Mountain:   true,
			Town:       true,
			Mob:        true,
			LevelUp:    true,
			Dungeon:    true,
			StopOnLoad: true,
		},
		Daemon: Daemon{
			TickRate:       defaultTickRate,
			AttachInterval: defaultAttachInterval,
			StateDir:       defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
