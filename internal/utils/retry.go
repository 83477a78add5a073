package utils

import (
	"context"
	"time"
)

// RetryPolicy borne les nouvelles tentatives : nombre maximal d'essais
// et délais entre chaque (1s, 2s, 4s par défaut).
type RetryPolicy struct {
	MaxAttempts int
	Delays      []time.Duration
	// Sleep est remplaçable en test
	Sleep func(time.Duration)
}

// DefaultRetryPolicy : 3 tentatives, backoff exponentiel 1s/2s/4s
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delays:      []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		Sleep:       time.Sleep,
	}
}

// Do exécute fn jusqu'à réussite ou épuisement des tentatives.
// Le délai i s'applique après l'échec de la tentative i.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err = fn(); err == nil {
			return nil
		}
		if attempt < p.MaxAttempts-1 && attempt < len(p.Delays) {
			sleep(p.Delays[attempt])
		}
	}
	return err
}
