package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex book_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortCode returns a short upper-cased code suitable for customer
// facing promo codes, e.g. `WPXY12A8Q`. Total length is capped at 12.
func GenerateShortCode(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}
	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(fmt.Sprintf("%s%s", prefix, id))
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_RETREAT          = "ret"
	UUID_PREFIX_ROOM             = "room"
	UUID_PREFIX_BOOKING          = "book"
	UUID_PREFIX_PROMO_CODE       = "promo"
	UUID_PREFIX_PAYMENT          = "pay"
	UUID_PREFIX_PAYMENT_SCHEDULE = "sched"
	UUID_PREFIX_BLOG_POST        = "post"
	UUID_PREFIX_SUBSCRIBER       = "sub"
	UUID_PREFIX_POLICY           = "policy"
	UUID_PREFIX_WAITLIST         = "wait"
	UUID_PREFIX_USER             = "user"
	UUID_PREFIX_TRANSLATION      = "tr"
)
