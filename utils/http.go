// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by outbound calls to partner services.
var HTTPClient = &http.Client{
	Timeout: 15 * time.Second,
}
