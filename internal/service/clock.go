package service

import (
	"fmt"
	"strconv"
	"strings"
)

// clockToMinutes parses an HH:MM string into minutes after midnight.
// Returns -1 for anything unparseable.
func clockToMinutes(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return -1
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// minutesToClock converts minutes after midnight to HH:MM, wrapping at 24h.
func minutesToClock(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// clockDiffMinutes returns the absolute difference between two HH:MM times in
// minutes. Unparseable times compare as maximally distant.
func clockDiffMinutes(a, b string) int {
	am := clockToMinutes(a)
	bm := clockToMinutes(b)
	if am < 0 || bm < 0 {
		return 1440
	}
	d := am - bm
	if d < 0 {
		d = -d
	}
	return d
}

// addMinutes shifts an HH:MM time by the given number of minutes.
func addMinutes(clock string, minutes int) string {
	m := clockToMinutes(clock)
	if m < 0 {
		return clock
	}
	return minutesToClock(m + minutes)
}

// withinWindow reports whether clock is inside [start, end] inclusive.
// Returns false when any time is unparseable or the window is inverted.
func withinWindow(clock, start, end string) bool {
	c := clockToMinutes(clock)
	s := clockToMinutes(start)
	e := clockToMinutes(end)
	if c < 0 || s < 0 || e < 0 || e < s {
		return false
	}
	return c >= s && c <= e
}
