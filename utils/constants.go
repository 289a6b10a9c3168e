// File: utils/constants.go
package utils

import "time"

// SlotCachePrefix is the prefix used for cached open-slot listings,
// keyed as slots:<doctorId>:<date>.
const SlotCachePrefix = "slots:"

// StoreTimeout bounds every repository call against Mongo.
const StoreTimeout = 5 * time.Second
