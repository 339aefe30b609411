package edgework

import (
	"encoding/json"
	"fmt"
	"strings"
)

// emptyPlate is the compact spelling of a plate with no ports.
const emptyPlate = "-"

// ParseCompact parses plates separated by ';' or '|' with ports separated by
// ',', e.g. "DVI,PS2;-;Serial". An empty or "-" plate has no ports; an empty
// string has no plates.
func ParseCompact(s string) (Edgework, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Edgework{}, nil
	}

	parts := strings.Split(strings.ReplaceAll(s, "|", ";"), ";")
	ew := Edgework{Plates: make([]Plate, 0, len(parts))}
	for i, part := range parts {
		plate := NewPlate()
		part = strings.TrimSpace(part)
		if part != "" && part != emptyPlate {
			for _, name := range strings.Split(part, ",") {
				if strings.TrimSpace(name) == "" {
					continue
				}
				p, err := ParsePortType(name)
				if err != nil {
					return Edgework{}, fmt.Errorf("plate %d: %w", i+1, err)
				}
				plate.Put(p)
			}
		}
		ew.Plates = append(ew.Plates, plate)
	}
	return ew, nil
}

// portsWidget is one port plate as reported by the bomb-info widget query.
type portsWidget struct {
	PresentPorts []string `json:"presentPorts"`
}

// ParseWidgets parses one JSON document per plate in the widget query form
// {"presentPorts":["DVI","PS2"]}. A null port list is an empty plate.
func ParseWidgets(entries []string) (Edgework, error) {
	ew := Edgework{Plates: make([]Plate, 0, len(entries))}
	for i, entry := range entries {
		var w portsWidget
		if err := json.Unmarshal([]byte(entry), &w); err != nil {
			return Edgework{}, fmt.Errorf("plate %d: decode widget: %w", i+1, err)
		}
		plate := NewPlate()
		for _, name := range w.PresentPorts {
			p, err := ParsePortType(name)
			if err != nil {
				return Edgework{}, fmt.Errorf("plate %d: %w", i+1, err)
			}
			plate.Put(p)
		}
		ew.Plates = append(ew.Plates, plate)
	}
	return ew, nil
}
