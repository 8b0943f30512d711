// Package metrics provides prometheus backed metrics for the application and the handler exposing them.
package metrics

import "fmt"

type metricsAlreadyRegistered struct {
	metricsName string
}

type metricsNotRegistered struct {
	metricsName string
}

type labelMismatch struct {
	metricsName string
	want, got   []string
}

func (e metricsAlreadyRegistered) Error() string {
	return fmt.Sprintf("Metrics %v already registered", e.metricsName)
}

func (e metricsNotRegistered) Error() string {
	return fmt.Sprintf("Metrics %v is not registered", e.metricsName)
}

func (e labelMismatch) Error() string {
	return fmt.Sprintf("Metrics %v recorded with labels %v, previously %v", e.metricsName, e.got, e.want)
}
