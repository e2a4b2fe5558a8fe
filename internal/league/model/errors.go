package model

import "errors"

var (
	// ErrLeagueNotFound indicates the requested league does not exist.
	ErrLeagueNotFound = errors.New("league not found")
	// ErrInvalidLeagueName indicates an empty or otherwise invalid league name.
	ErrInvalidLeagueName = errors.New("invalid league name")
	// ErrNotAdmin indicates the acting user holds no accepted Admin
	// invitation for the league.
	ErrNotAdmin = errors.New("admin role required")
	// ErrNotMember indicates the acting user is neither a member of the
	// league nor currently invited to it.
	ErrNotMember = errors.New("not a member of this league")
)
