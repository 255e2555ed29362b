package domain

import (
	"bytes"
	"encoding/json"
)

// Text is either absent or a present string. Absent text splits into no
// rows at all, while a present empty string splits into a single empty row.
type Text struct {
	value   string
	present bool
}

func AbsentText() Text {
	return Text{}
}

func PresentText(value string) Text {
	return Text{value: value, present: true}
}

func (t Text) Value() (string, bool) {
	return t.value, t.present
}

func (t Text) IsAbsent() bool {
	return !t.present
}

// UnmarshalJSON maps any JSON value other than a string (null, numbers,
// objects) to absent text. A missing field never reaches this method and
// keeps the zero value, which is absent as well.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		*t = AbsentText()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = PresentText(s)
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.present {
		return []byte("null"), nil
	}
	return json.Marshal(t.value)
}
