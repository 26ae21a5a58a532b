/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package timecode

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeCode indicates a broadcast time code outside HHMM bounds.
var ErrInvalidTimeCode = errors.New("invalid broadcast time code")

const daySeconds = 24 * 60 * 60

// Timestamp resolves a 4-digit broadcast time code (e.g. 2300) to an instant
// on the reference date. A zero reference means the current UTC date.
func Timestamp(code int, ref time.Time) (time.Time, error) {
	hour, minute, err := split(code)
	if err != nil {
		return time.Time{}, err
	}

	if ref.IsZero() {
		ref = time.Now().UTC()
	}

	year, month, day := ref.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, ref.Location()), nil
}

// FormatForDisplay renders a time code as "HH:MM" in the local time zone,
// suitable for HTML5 time inputs.
func FormatForDisplay(code int) (string, error) {
	ts, err := Timestamp(code, time.Now())
	if err != nil {
		return "", err
	}
	return ts.Format("15:04"), nil
}

// Current returns the reference instant as a UTC time code, e.g. 15:03 -> 1503.
// A zero reference means now.
func Current(ref time.Time) int {
	if ref.IsZero() {
		ref = time.Now()
	}
	ref = ref.UTC()
	return ref.Hour()*100 + ref.Minute()
}

// Duration computes the scheduled window length in between two time codes.
// Windows where end precedes start are interpreted as spanning midnight.
func Duration(start, end int) (time.Duration, error) {
	ref := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

	startAt, err := Timestamp(start, ref)
	if err != nil {
		return 0, err
	}
	endAt, err := Timestamp(end, ref)
	if err != nil {
		return 0, err
	}

	if startAt.After(endAt) {
		gap := startAt.Sub(endAt) / time.Second
		return time.Duration(daySeconds-gap) * time.Second, nil
	}
	return endAt.Sub(startAt), nil
}

func split(code int) (hour, minute int, err error) {
	if code < 0 || code > 2359 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidTimeCode, code)
	}

	hour = code / 100
	minute = code % 100
	if minute > 59 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidTimeCode, code)
	}
	return hour, minute, nil
}
