package network

import "time"

// State состояние сетевого подключения
type State int

const (
	Online State = iota
	Degraded
	Offline
)

// String returns the lowercase state name used in logs and status output.
func (s State) String() string {
	switch s {
	case Online:
		return "online"
	case Degraded:
		return "degraded"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Decision is the advisory consumed by services and the UI.
type Decision struct {
	ShouldBlock      bool `json:"should_block" yaml:"should_block"`
	ShouldShowBanner bool `json:"should_show_banner" yaml:"should_show_banner"`
}

// Transition describes one state change delivered to listeners.
type Transition struct {
	At   time.Time
	From State
	To   State
}

// Config параметры монитора
type Config struct {
	FailureThreshold int           `mapstructure:"failure_threshold"` // подряд неудачных запросов до Degraded
	DegradedGrace    time.Duration `mapstructure:"degraded_grace"`    // сколько Degraded не блокирует запросы
	OfflineAfter     time.Duration `mapstructure:"offline_after"`     // сколько Degraded до перехода в Offline
	Debounce         time.Duration `mapstructure:"debounce"`          // минимальное время между переходами (кроме событий ОС)
	ProbeInterval    time.Duration `mapstructure:"probe_interval"`
	ProbeTimeout     time.Duration `mapstructure:"probe_timeout"`
}

// DefaultConfig returns the monitor defaults.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 3,
		DegradedGrace:    5 * time.Second,
		OfflineAfter:     30 * time.Second,
		Debounce:         2 * time.Second,
		ProbeInterval:    10 * time.Second,
		ProbeTimeout:     2 * time.Second,
	}
}

// DecisionFor derives the decision from a state and how long it has been degraded.
func DecisionFor(state State, degradedFor time.Duration, cfg Config) Decision {
	switch state {
	case Online:
		return Decision{}
	case Degraded:
		return Decision{ShouldBlock: degradedFor > cfg.DegradedGrace, ShouldShowBanner: true}
	default:
		return Decision{ShouldBlock: true, ShouldShowBanner: true}
	}
}
