package services

import "encoding/json"

// ExtractFirstJSON pulls the first well-formed JSON value out of text that
// may contain surrounding prose, the way model output usually does. Objects
// are tried before arrays. Returns false if nothing parses.
//
// Bracket depth is counted without quote awareness: a brace inside a string
// literal moves the counter. That is an accepted approximation for
// model-generated JSON-ish text; a span broken that way fails to parse and
// scanning simply continues.
func ExtractFirstJSON(text string) (interface{}, bool) {
	raw, ok := ExtractFirstJSONRaw(text)
	if !ok {
		return nil, false
	}

	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false
	}
	return value, true
}

// ExtractFirstJSONRaw returns the raw substring of the first balanced
// bracket span that parses as JSON, scanning for objects first and then
// arrays.
func ExtractFirstJSONRaw(text string) (string, bool) {
	pairs := [2][2]byte{{'{', '}'}, {'[', ']'}}

	for _, pair := range pairs {
		open, close := pair[0], pair[1]
		depth := 0
		start := -1

		for i := 0; i < len(text); i++ {
			switch text[i] {
			case open:
				if depth == 0 {
					start = i
				}
				depth++
			case close:
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 && start >= 0 {
					candidate := text[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate, true
					}
					// Malformed span; a later balanced block may still parse.
				}
			}
		}
	}

	return "", false
}

// DecodeFirstJSON unmarshals the first well-formed JSON value found in text
// into target. Used as the fallback when a strict decode of the whole
// response fails.
func DecodeFirstJSON(text string, target interface{}) bool {
	raw, ok := ExtractFirstJSONRaw(text)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), target) == nil
}
