package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// UserInfoConnectTimeout bounds connection establishment for the user
	// endpoint separately from the overall request deadline.
	UserInfoConnectTimeout = 30 * time.Second

	// ReachabilityProbeTimeout bounds the diagnostic HEAD probe issued after
	// a transport failure.
	ReachabilityProbeTimeout = 10 * time.Second

	// DefaultUserAgent identifies this tool to the AccessLink API.
	DefaultUserAgent = "polar-metrics/1.0 (+https://github.com/jabrena/polar-metrics)"
)
