package annotation

import "errors"

// ErrMalformedAnnotation is returned when a pending document cannot be parsed or has no
// "@id". The report cannot safely proceed for an unidentified model.
var ErrMalformedAnnotation = errors.New("malformed annotation")
