package fireauth

import "encoding/json"

// Claims is a user's custom claim map. The REST API transports it as a
// JSON-encoded string inside the customAttributes field, so it
// marshals to and from a string rather than an object.
type Claims map[string]any

func (c Claims) MarshalJSON() ([]byte, error) {
	inner, err := json.Marshal(map[string]any(c))
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(inner))
}

func (c *Claims) UnmarshalJSON(data []byte) error {
	var inner string
	if err := json.Unmarshal(data, &inner); err != nil {
		return err
	}
	var claims map[string]any
	if err := json.Unmarshal([]byte(inner), &claims); err != nil {
		return err
	}
	*c = claims
	return nil
}
