package event

import "encoding/json"

// DecodePayload decodes an event payload into T via type assertion then JSON fallback.
// In-process publishers already pass the struct; payloads decoded from JSON
// lines arrive as maps and take the round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	if p, ok := input.(*T); ok && p != nil {
		return *p, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
