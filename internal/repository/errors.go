package repository

import "errors"

// ErrNotFound se devuelve cuando no existe el registro pedido.
var ErrNotFound = errors.New("not found")
