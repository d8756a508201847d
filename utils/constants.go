package utils

import "time"

// RevokedTokenPrefix is the prefix for Redis keys of signed-out local tokens.
const RevokedTokenPrefix = "auth:revoked:"

// CalendarCachePrefix is the prefix for cached availability calendars.
const CalendarCachePrefix = "calendar:"

// CalendarCacheTTL bounds how long a generated calendar is kept. Keys already
// change daily, so this only limits memory.
const CalendarCacheTTL = 24 * time.Hour

// RequestTimeout is the deadline applied to single store round-trips.
const RequestTimeout = 5 * time.Second
