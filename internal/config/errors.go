package config

import "errors"

var ErrConfiguration = errors.New("configuration error")
