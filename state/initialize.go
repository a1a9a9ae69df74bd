package state

import (
	"time"

	"stylesnoop/common"
)

// newLocalEnv creates a new LocalEnv instance with default values, actual
// values are filled in after command line and configuration are processed.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		Format: common.OutputFmtAnsi,
	}
}
