package trade

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

// Order codes look like SA-20260901-4821: the UTC calendar date at
// generation time plus a uniform random 4-digit suffix. The suffix alone
// does not guarantee uniqueness; the orders table enforces it with a
// unique index and the order service retries on conflict.
var orderCodePattern = regexp.MustCompile(`^SA-\d{8}-\d{4}$`)

// GenerateOrderCode produces an order code for the current UTC date
func GenerateOrderCode() string {
	return GenerateOrderCodeAt(time.Now())
}

// GenerateOrderCodeAt produces an order code for the given time's UTC date
func GenerateOrderCodeAt(t time.Time) string {
	suffix := 1000 + rand.IntN(9000)
	return fmt.Sprintf("SA-%s-%04d", t.UTC().Format("20060102"), suffix)
}

// IsOrderCode reports whether s matches the order code format
func IsOrderCode(s string) bool {
	return orderCodePattern.MatchString(s)
}
