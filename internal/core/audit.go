package core

import (
	"bytes"
	"encoding/json"
)

// AuditPropertyKey is the project property holding the audit user list.
const AuditPropertyKey = "internal-audit"

// AuditRecord is one user entry of the audit property.
type AuditRecord struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
	Email    string `json:"email,omitempty"`
	Groups   string `json:"groups,omitempty"`
	SapID    string `json:"sapId,omitempty"`
	AltID    string `json:"altId,omitempty"`
}

// UnmarshalJSON accepts any JSON scalar for the record fields. Numbers and
// booleans keep their literal text and null becomes "", so one odd record
// does not fail the whole list.
func (r *AuditRecord) UnmarshalJSON(b []byte) error {
	var raw struct {
		UserID   json.RawMessage `json:"userId"`
		UserName json.RawMessage `json:"userName"`
		Email    json.RawMessage `json:"email"`
		Groups   json.RawMessage `json:"groups"`
		SapID    json.RawMessage `json:"sapId"`
		AltID    json.RawMessage `json:"altId"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = AuditRecord{
		UserID:   scalarText(raw.UserID),
		UserName: scalarText(raw.UserName),
		Email:    scalarText(raw.Email),
		Groups:   scalarText(raw.Groups),
		SapID:    scalarText(raw.SapID),
		AltID:    scalarText(raw.AltID),
	}
	return nil
}

// scalarText renders a JSON value as display text. Objects and arrays keep
// their compact JSON form.
func scalarText(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || string(v) == "null" {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return string(v)
	}
	return buf.String()
}

type AuditPayload struct {
	Users []AuditRecord `json:"users"`
}

// EmptyPayload is served when the property carries no value.
var EmptyPayload = json.RawMessage(`{"users":[]}`)

// PayloadOrEmpty returns value unchanged unless it is absent or a falsy JSON
// literal, in which case EmptyPayload is returned.
func PayloadOrEmpty(value json.RawMessage) json.RawMessage {
	v := bytes.TrimSpace(value)
	switch string(v) {
	case "", "null", "false", "0", `""`:
		return EmptyPayload
	}
	return value
}
