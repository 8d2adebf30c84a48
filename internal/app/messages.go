package app

import "time"

// TickMsg triggers one evaluation cycle and a frame update.
type TickMsg time.Time
