// Package evdevback turns hardware back key presses read from a Linux input
// device into router back navigation. Presses are delivered on the UI loop,
// so the router is never touched from the reading goroutine.
package evdevback
