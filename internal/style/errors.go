package style

import "errors"

// ErrBadColor indicates a palette entry that is not a #rrggbb color.
var ErrBadColor = errors.New("style: invalid hex color")
