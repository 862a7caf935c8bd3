package urlutil

import "errors"

var errMissingHost = errors.New("base URL must include scheme and host")
