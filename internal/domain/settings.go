package domain

import "encoding/json"

// StoreSettings serializes as one flat JSON document: the lifted fields are
// merged with Extra so arbitrary settings written by the admin API survive a
// round trip through the cache and the settings column unchanged.
func (s StoreSettings) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(s.Extra)+2)
	for k, v := range s.Extra {
		doc[k] = v
	}
	if s.Currency != "" {
		doc["currency"] = s.Currency
	}
	if s.Language != "" {
		doc["language"] = s.Language
	}
	return json.Marshal(doc)
}

func (s *StoreSettings) UnmarshalJSON(raw []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	out := StoreSettings{}
	if v, ok := doc["currency"].(string); ok {
		out.Currency = v
		delete(doc, "currency")
	}
	if v, ok := doc["language"].(string); ok {
		out.Language = v
		delete(doc, "language")
	}
	if len(doc) > 0 {
		out.Extra = doc
	}
	*s = out
	return nil
}
