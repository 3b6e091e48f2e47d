package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Notifier   bool      `json:"notifier"`
	LastCheck  time.Time `json:"last_check"`
}
