package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the current state of Registry to a Prometheus Pushgateway.
func Push(gatewayURL, job, instance string) error {
	err := push.New(gatewayURL, job).
		Gatherer(Registry).
		Grouping("instance", instance).
		Push()
	if err != nil {
		return fmt.Errorf("push metrics to %s: %w", gatewayURL, err)
	}
	return nil
}
