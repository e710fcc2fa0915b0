package core

import (
	"os"
	"time"
)

// File permissions used when gram writes files.
const (
	PermOwnerRW os.FileMode = 0o600
	PermFile    os.FileMode = 0o644
	PermDir     os.FileMode = 0o755
)

// Default timeouts for external calls.
const (
	TimeoutTool     = 30 * time.Second
	TimeoutToolLong = 60 * time.Second
	TimeoutHTTP     = 10 * time.Second
	TimeoutChat     = 30 * time.Second
	TimeoutGit      = 2 * time.Minute
	TimeoutInstall  = 5 * time.Minute
)

// KillGrace bounds how long a killed command may keep its output pipes open.
const KillGrace = 2 * time.Second
