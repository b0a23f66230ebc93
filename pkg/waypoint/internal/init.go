// Package internal contains the shared infrastructure for the waypoint
// navigation layer: loggers, the baseline theme, and rasterised chrome.
// Types and functions in this package are not part of the public API.
package internal
