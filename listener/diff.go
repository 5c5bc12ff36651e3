package listener

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// AddedMembers returns the members of current that have no structurally equal counterpart in previous.
// Duplicates are collapsed and the order of first appearance in current is kept.
func AddedMembers(previous, current []HouseholdMember) []HouseholdMember {
	var difference []HouseholdMember
	for _, member := range current {
		if containsMember(previous, member) || containsMember(difference, member) {
			continue
		}
		difference = append(difference, member)
	}

	return difference
}

// RemovedMembers returns the members of previous that have no structurally equal counterpart in current.
func RemovedMembers(previous, current []HouseholdMember) []HouseholdMember {
	return AddedMembers(current, previous)
}

func containsMember(members []HouseholdMember, member HouseholdMember) bool {
	for _, candidate := range members {
		if candidate.Equal(member) {
			return true
		}
	}

	return false
}

// AddedMember returns the first member added by the event.
func AddedMember(data EventData) (*HouseholdMember, error) {
	previous, current, err := memberImages(data)
	if err != nil {
		return nil, err
	}

	return first(AddedMembers(previous, current)), nil
}

// RemovedMember returns the first member removed by the event.
func RemovedMember(data EventData) (*HouseholdMember, error) {
	previous, current, err := memberImages(data)
	if err != nil {
		return nil, err
	}

	return first(RemovedMembers(previous, current)), nil
}

func first(members []HouseholdMember) *HouseholdMember {
	if len(members) == 0 {
		return nil
	}

	return &members[0]
}

func memberImages(data EventData) ([]HouseholdMember, []HouseholdMember, error) {
	previous, err := HouseholdMembersFrom(data.OldData)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read household members from old data")
	}

	current, err := HouseholdMembersFrom(data.NewData)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read household members from new data")
	}

	return previous, current, nil
}

// HouseholdMembersFrom extracts the member list from an event image. The list may hold HouseholdMember values
// directly or the generic maps and slices produced by decoding JSON into interface values.
func HouseholdMembersFrom(image map[string]any) ([]HouseholdMember, error) {
	raw, ok := image[HouseholdMembersKey]
	if !ok || raw == nil {
		return nil, nil
	}

	switch members := raw.(type) {
	case []HouseholdMember:
		return members, nil
	case []*HouseholdMember:
		result := make([]HouseholdMember, 0, len(members))
		for _, member := range members {
			if member != nil {
				result = append(result, *member)
			}
		}
		return result, nil
	}

	var result []HouseholdMember
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			upstreamTimeHook,
			uuidHook,
		),
		WeaklyTypedInput: true,
		Result:           &result,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	return result, nil
}

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
)

func upstreamTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType || from.Kind() != reflect.String {
		return data, nil
	}

	value := reflect.ValueOf(data).String()
	if value == "" {
		return time.Time{}, nil
	}

	return ParseUpstreamTime(value)
}

func uuidHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != uuidType || from.Kind() != reflect.String {
		return data, nil
	}

	return uuid.Parse(reflect.ValueOf(data).String())
}
