package game

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
)

// Bookmakers is the normalized quote list. It decodes both the bare array
// and the legacy {"bookmakers": [...]} wrapper.
type Bookmakers []Bookmaker

func (b *Bookmakers) UnmarshalJSON(data []byte) error {
	items, err := DecodeBookmakers(data)
	if err != nil {
		return err
	}
	*b = items
	return nil
}

type wrappedBookmakers struct {
	Bookmakers *[]Bookmaker `json:"bookmakers"`
}

func DecodeBookmakers(raw []byte) (Bookmakers, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Bookmakers{}, nil
	}

	switch data[0] {
	case '[':
		var items []Bookmaker
		if err := sonic.Unmarshal(data, &items); err != nil {
			return Bookmakers{}, fmt.Errorf("decode bookmakers: %w", err)
		}
		return normalize(items), nil
	case '{':
		var wrapped wrappedBookmakers
		if err := sonic.Unmarshal(data, &wrapped); err != nil {
			return Bookmakers{}, fmt.Errorf("decode wrapped bookmakers: %w", err)
		}
		if wrapped.Bookmakers == nil {
			return Bookmakers{}, fmt.Errorf("decode wrapped bookmakers: missing bookmakers field")
		}
		return normalize(*wrapped.Bookmakers), nil
	default:
		return Bookmakers{}, fmt.Errorf("decode bookmakers: unexpected payload starting with %q", data[0])
	}
}

func EncodeBookmakers(items Bookmakers) ([]byte, error) {
	if items == nil {
		items = Bookmakers{}
	}
	out, err := sonic.Marshal([]Bookmaker(items))
	if err != nil {
		return nil, fmt.Errorf("encode bookmakers: %w", err)
	}
	return out, nil
}

func normalize(items []Bookmaker) Bookmakers {
	if items == nil {
		return Bookmakers{}
	}
	return Bookmakers(items)
}
