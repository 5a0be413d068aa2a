package cpf

import (
	"encoding/json"

	dErrors "github.com/betafcc/cpf/pkg/domain-errors"
)

// MarshalText encodes the canonical punctuated form. The zero value encodes
// as an empty string.
func (c Cpf) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// UnmarshalText accepts any shape From accepts. Empty text decodes to the
// zero value, mirroring MarshalText.
func (c *Cpf) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Cpf{}
		return nil
	}
	parsed, err := From(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON encodes the punctuated form as a JSON string, and the zero
// value as null.
func (c Cpf) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}

// UnmarshalJSON rejects non-string JSON with CodeTypeMismatch; strings go
// through From. JSON null leaves c unchanged.
func (c *Cpf) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return dErrors.Wrap(err, dErrors.CodeMalformedInput, "cpf: invalid json")
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
