package wallet

import "regexp"

var mobileAgent = regexp.MustCompile(`(?i)iPhone|iPad|iPod|Android`)

// IsMobileDevice classifies a user agent as a phone, tablet, pod or Android device.
func IsMobileDevice(userAgent string) bool {
	return mobileAgent.MatchString(userAgent)
}
