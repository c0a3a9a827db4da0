package controller

import "errors"

// Configuration errors returned by New.
var (
	errEmptyResource = errors.New("resource is required")
	errNilClient     = errors.New("api client is required")
	errNilPresenter  = errors.New("presenter is required")
)
