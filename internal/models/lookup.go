package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrEmptyIdentifier = errors.New("channel identifier is required")
	ErrUnknownMode     = errors.New("unknown lookup mode")
)

// LookupMode selects how a channel identifier is resolved.
type LookupMode string

const (
	LookupByID       LookupMode = "id"
	LookupByUsername LookupMode = "username"
	LookupByHandle   LookupMode = "handle"
)

// ChannelLookup identifies a channel by ID, legacy username or @handle.
// The zero value is invalid; use ByID, ByUsername, ByHandle or ParseLookup.
type ChannelLookup struct {
	mode  LookupMode
	value string
}

// ByID looks a channel up by its UC... channel ID.
func ByID(id string) ChannelLookup {
	return ChannelLookup{mode: LookupByID, value: id}
}

// ByUsername looks a channel up by its legacy username.
func ByUsername(name string) ChannelLookup {
	return ChannelLookup{mode: LookupByUsername, value: name}
}

// ByHandle looks a channel up by its handle, given without the leading @.
func ByHandle(handle string) ChannelLookup {
	return ChannelLookup{mode: LookupByHandle, value: strings.TrimPrefix(handle, "@")}
}

// Mode returns how the lookup is resolved.
func (l ChannelLookup) Mode() LookupMode { return l.mode }

// Value returns the ID, username or handle being looked up.
func (l ChannelLookup) Value() string { return l.value }

// Valid reports whether the lookup was built by a constructor with a non-empty value.
func (l ChannelLookup) Valid() bool { return l.mode != "" && l.value != "" }

// CacheArgs is the ordered argument tuple used to key cached lookups.
func (l ChannelLookup) CacheArgs() []string {
	return []string{string(l.mode), l.value}
}

// MarshalJSON encodes the lookup as {"mode": ..., "value": ...}.
func (l ChannelLookup) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mode  LookupMode `json:"mode"`
		Value string     `json:"value"`
	}{l.mode, l.value})
}

// String returns "mode:value".
func (l ChannelLookup) String() string {
	return fmt.Sprintf("%s:%s", l.mode, l.value)
}

// ParseLookup builds a lookup from the mode selector and the free-text field.
// A channel URL overrides the selected mode:
//
//	youtube.com/channel/<id>           -> ByID
//	youtube.com/user/<name>, /c/<name> -> ByUsername
//	youtube.com/@<handle>              -> ByHandle
//
// Handles and legacy usernames are separate namespaces, so input starting
// with @ is always resolved as a handle, whatever the selected mode.
func ParseLookup(mode, input string) (ChannelLookup, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return ChannelLookup{}, ErrEmptyIdentifier
	}

	if l, ok := lookupFromURL(input); ok {
		return l, nil
	}

	switch LookupMode(mode) {
	case LookupByID, LookupByUsername, LookupByHandle, "":
	default:
		return ChannelLookup{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	if strings.HasPrefix(input, "@") || LookupMode(mode) == LookupByHandle {
		handle := strings.TrimPrefix(input, "@")
		if handle == "" {
			return ChannelLookup{}, ErrEmptyIdentifier
		}
		return ByHandle(handle), nil
	}
	switch LookupMode(mode) {
	case LookupByUsername:
		return ByUsername(input), nil
	default:
		return ByID(input), nil
	}
}

func lookupFromURL(input string) (ChannelLookup, bool) {
	if !strings.Contains(input, "youtube.com") {
		return ChannelLookup{}, false
	}
	if !strings.Contains(input, "://") {
		input = "https://" + input
	}
	parsedURL, err := url.Parse(input)
	if err != nil || !strings.HasSuffix(parsedURL.Hostname(), "youtube.com") {
		return ChannelLookup{}, false
	}

	segments := strings.Split(strings.Trim(parsedURL.Path, "/"), "/")
	if handle, ok := strings.CutPrefix(segments[0], "@"); ok && handle != "" {
		return ByHandle(handle), true
	}
	if len(segments) < 2 || segments[1] == "" {
		return ChannelLookup{}, false
	}
	switch segments[0] {
	case "channel":
		return ByID(segments[1]), true
	case "user", "c":
		return ByUsername(segments[1]), true
	}
	return ChannelLookup{}, false
}
