package subdomain

import (
	"math"
	"strconv"
	"time"
)

// retryAfterSeconds formata Retry-After em segundos inteiros, arredondando
// para cima e nunca abaixo de 1 (0 mandaria o cliente repetir na hora).
func retryAfterSeconds(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
