package services

import "time"

// ServiceTimeCalculator computes a restaurant's average service time, the
// mean of deliveredAt - createdAt over its delivered orders.
type ServiceTimeCalculator struct{}

func NewServiceTimeCalculator() ServiceTimeCalculator {
	return ServiceTimeCalculator{}
}

// AverageMinutes returns the mean of durations in minutes. The flag is false
// when there is nothing to average.
func (ServiceTimeCalculator) AverageMinutes(durations []time.Duration) (float64, bool) {
	if len(durations) == 0 {
		return 0, false
	}
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return total.Minutes() / float64(len(durations)), true
}
