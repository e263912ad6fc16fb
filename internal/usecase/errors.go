package usecase

import "errors"

// ErrInvalidInput marks request validation and parse failures so the HTTP
// layer can map them to 400 with errors.Is instead of inspecting message
// text. Storage errors never wrap it.
var ErrInvalidInput = errors.New("invalid input")
