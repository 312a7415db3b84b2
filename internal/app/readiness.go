package app

import (
	"context"

	httpserver "github.com/fairyhunter13/writing-compass/internal/adapter/httpserver"
)

// Pinger is anything that can report whether it is reachable.
type Pinger interface{ Ping(ctx context.Context) error }

// BuildReadinessProbes returns one probe per configured dependency; nil
// dependencies are skipped.
func BuildReadinessProbes(db, redis, kafka, tika Pinger) []httpserver.ReadinessProbe {
	probes := make([]httpserver.ReadinessProbe, 0, 4)
	add := func(name string, p Pinger) {
		if p == nil {
			return
		}
		probes = append(probes, httpserver.ReadinessProbe{Name: name, Check: p.Ping})
	}
	add("db", db)
	add("redis", redis)
	add("kafka", kafka)
	add("tika", tika)
	return probes
}
