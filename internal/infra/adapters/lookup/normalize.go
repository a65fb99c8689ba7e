package lookup

import (
	"bytes"
	"encoding/json"
	"fmt"

	"telegram-lookup-bot/internal/domain/model"
)

// The provider wraps its payload inconsistently: sometimes {"data": [...]},
// sometimes a bare record object, sometimes a bare array, and error replies
// come as {"message": ...} or {"status": "error", ...}. normalizeResponse
// flattens all of that into a slice of usable records; "no records found" is
// an empty slice, not an error.
func normalizeResponse(body []byte) ([]model.LookupRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty lookup response")
	}

	switch trimmed[0] {
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("decode lookup response: %w", err)
		}
		return decodeRecords(raw), nil
	case '{':
		return normalizeObject(trimmed)
	default:
		return nil, fmt.Errorf("unexpected lookup response format")
	}
}

func normalizeObject(body []byte) ([]model.LookupRecord, error) {
	var envelope struct {
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
		Status  string          `json:"status"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}

	if len(envelope.Data) > 0 {
		inner := bytes.TrimSpace(envelope.Data)
		switch {
		case len(inner) > 0 && inner[0] == '[':
			var raw []json.RawMessage
			if err := json.Unmarshal(inner, &raw); err != nil {
				return nil, fmt.Errorf("decode lookup data: %w", err)
			}
			return decodeRecords(raw), nil
		case len(inner) > 0 && inner[0] == '{':
			return decodeRecords([]json.RawMessage{inner}), nil
		default:
			return nil, nil
		}
	}

	// The object may itself be a single record.
	var rec model.LookupRecord
	if err := json.Unmarshal(body, &rec); err == nil && !rec.IsZero() {
		return []model.LookupRecord{rec}, nil
	}

	if envelope.Message == "No records found" {
		return nil, nil
	}
	if envelope.Status == "error" {
		return nil, fmt.Errorf("lookup api error: %s", envelope.Message)
	}
	return nil, fmt.Errorf("unexpected lookup response structure")
}

// decodeRecords drops entries that are not objects or carry no usable fields.
func decodeRecords(raw []json.RawMessage) []model.LookupRecord {
	out := make([]model.LookupRecord, 0, len(raw))
	for _, r := range raw {
		var rec model.LookupRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			continue
		}
		if rec.IsZero() {
			continue
		}
		out = append(out, rec)
	}
	return out
}
