// Package repository implements the persistence collaborator on MySQL.
// Sentinel errors defined here let handlers translate storage failures
// into HTTP statuses without string matching.
package repository

import "errors"

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// ErrEmailExists is returned when registration hits the unique email
// constraint.
var ErrEmailExists = errors.New("email already exists")
