package types

import (
	"encoding/json"
	"fmt"
)

// All enums serialize as stable string codes so that records survive
// round-trips across process and language boundaries. Integer values are
// an internal detail and never appear on the wire.

func (r Resolution) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Resolution) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("resolution: %w", err)
	}
	v, err := ParseResolution(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (v VideoCodec) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.code())
}

func (v *VideoCodec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("video codec: %w", err)
	}
	c, err := ParseVideoCodec(s)
	if err != nil {
		return err
	}
	*v = c
	return nil
}

func (a AudioCodec) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.code())
}

func (a *AudioCodec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("audio codec: %w", err)
	}
	c, err := ParseAudioCodec(s)
	if err != nil {
		return err
	}
	*a = c
	return nil
}

func (m MediaSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.code())
}

func (m *MediaSource) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("media source: %w", err)
	}
	v, err := ParseMediaSource(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (p ParseMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *ParseMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse mode: %w", err)
	}
	m, err := ParseParseMode(s)
	if err != nil {
		return err
	}
	*p = m
	return nil
}
