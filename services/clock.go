package services

import "time"

// timeNowUTC is the single time source of the service layer, a variable so
// tests can pin it.
var timeNowUTC = func() time.Time { return time.Now().UTC() }
