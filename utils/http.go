// utils/http.go (example)
package utils

import (
	"net/http"
	"time"
)

var HTTPClient = &http.Client{
	Timeout: 10 * time.Second, // upstream directory calls are small JSON bodies
}
