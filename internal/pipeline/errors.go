package pipeline

import "errors"

var ErrExtraction = errors.New("extraction failed")
