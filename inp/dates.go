// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "time"

// mjdEpoch is the Modified Julian Date epoch: 1858-11-17 00:00 UT.
var mjdEpoch = time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)

// TimeToMJD converts a UTC time.Time to a Modified Julian Date.
func TimeToMJD(t time.Time) float64 {
	return t.UTC().Sub(mjdEpoch).Hours() / 24.0
}

// MJDToTime converts a Modified Julian Date back to a UTC time.Time.
func MJDToTime(mjd float64) time.Time {
	return mjdEpoch.Add(time.Duration(mjd * 24 * float64(time.Hour)))
}

// Days returns the number of days represented by one time step of the
// given unit, used to advance a TimeWindow and to size a TimeSeries.
func (u TimeUnit) Days() float64 {
	switch u {
	case Minute:
		return 1.0 / (24.0 * 60.0)
	case Hour:
		return 1.0 / 24.0
	case Day:
		return 1.0
	case Week:
		return 7.0
	}
	return 1.0
}
