package pkgcfg

import (
	"strconv"
	"sync/atomic"
)

var (
	quietMode   atomic.Bool
	debugMode   atomic.Bool
	verboseMode atomic.Bool
)

// init seeds the runtime toggles from linker flags; CLI flags override
// these once parsed.
func init() {
	if v, err := strconv.ParseBool(rawQuiet); err == nil {
		quietMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawDebug); err == nil {
		debugMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawVerbose); err == nil {
		verboseMode.Store(v)
	}
}

func SetQuiet(enabled bool)   { quietMode.Store(enabled) }
func IsQuiet() bool           { return quietMode.Load() }
func SetDebug(enabled bool)   { debugMode.Store(enabled) }
func IsDebug() bool           { return debugMode.Load() }
func SetVerbose(enabled bool) { verboseMode.Store(enabled) }
func IsVerbose() bool         { return verboseMode.Load() }
