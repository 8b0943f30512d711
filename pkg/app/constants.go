package app

import "time"

const (
	defaultHTTPPort   = 8000
	defaultMetricPort = 2121
	shutDownTimeout   = 30 * time.Second
)
