package events

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
)

// DependencyKind is the kind of entity an event can depend on.
type DependencyKind uint8

const (
	DepUser DependencyKind = iota + 1
	DepGuild
	DepChannel
	DepRole
)

func (k DependencyKind) String() string {
	switch k {
	case DepUser:
		return "user"
	case DepGuild:
		return "guild"
	case DepChannel:
		return "channel"
	case DepRole:
		return "role"
	default:
		return fmt.Sprintf("DependencyKind(%d)", uint8(k))
	}
}

// MissingDependencyError is returned when an event references an entity that
// hasn't been materialized yet. It is an expected, recoverable condition: the
// caller registers a replay with the deferred cache and moves on.
type MissingDependencyError struct {
	Kind DependencyKind
	ID   discord.Snowflake
}

func (e MissingDependencyError) Error() string {
	return fmt.Sprintf("%v %v not materialized", e.Kind, e.ID)
}
