package exam

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

var errAnswerType = errors.New("answer must be an integer option index or a string")

// Answer is either an option index or free text. Two answers are equal only when
// both the form and the value match, so IndexAnswer(1) never equals TextAnswer("1").
// The zero Answer holds no value: it is neither an index nor a text, and a
// question whose key is the zero Answer has no answer key at all.
// Answer is comparable with ==.
type Answer struct {
	index  int
	text   string
	isText bool
	set    bool
}

func IndexAnswer(i int) Answer       { return Answer{index: i, set: true} }
func TextAnswer(s string) Answer     { return Answer{text: s, isText: true, set: true} }
func (a Answer) IsText() bool        { return a.isText }
func (a Answer) IsZero() bool        { return !a.set }
func (a Answer) Equal(b Answer) bool { return a == b }

// Index returns the option index; ok is false for text and zero answers.
func (a Answer) Index() (int, bool) {
	if !a.set || a.isText {
		return 0, false
	}
	return a.index, true
}

// Text returns the free text; ok is false for index and zero answers.
func (a Answer) Text() (string, bool) {
	if !a.isText {
		return "", false
	}
	return a.text, true
}

func (a Answer) String() string {
	switch {
	case !a.set:
		return "<none>"
	case a.isText:
		return strconv.Quote(a.text)
	}
	return strconv.Itoa(a.index)
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch {
	case !a.set:
		return []byte("null"), nil
	case a.isText:
		return json.Marshal(a.text)
	}
	return []byte(strconv.Itoa(a.index)), nil
}

// UnmarshalJSON leaves a JSON null as the zero Answer.
func (a *Answer) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errAnswerType
	}
	if bytes.Equal(b, []byte("null")) {
		*a = Answer{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return errAnswerType
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("answer index %v is not an integer", f)
	}
	*a = IndexAnswer(int(f))
	return nil
}

func (a Answer) MarshalYAML() (interface{}, error) {
	switch {
	case !a.set:
		return nil, nil
	case a.isText:
		return a.text, nil
	}
	return a.index, nil
}

func (a *Answer) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errAnswerType
	}
	switch value.Tag {
	case "!!int":
		i, err := strconv.Atoi(value.Value)
		if err != nil {
			return fmt.Errorf("answer index %q: %w", value.Value, err)
		}
		*a = IndexAnswer(i)
	case "!!str":
		*a = TextAnswer(value.Value)
	case "!!null":
		*a = Answer{}
	default:
		return errAnswerType
	}
	return nil
}
