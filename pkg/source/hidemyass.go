package source

import (
	"errors"
	"fmt"
	"strings"
)

// hidemyass rows carry an "updated N minutes/secs ago" column before the
// address, and the protocol on the following line.
var durationMarkers = []string{"minutes", "secs"}

type HideMyAssSource struct{}

func NewHideMyAssSource() *HideMyAssSource {
	return &HideMyAssSource{}
}

func (s *HideMyAssSource) Name() string {
	return HideMyAss
}

func (s *HideMyAssSource) Span() int {
	return 2
}

func (s *HideMyAssSource) ParseRecord(lines []string) (Proxy, error) {
	head, tail := lines[0], lines[1]

	part, ok := afterMarker(head)
	if !ok {
		return Proxy{}, ErrSkip
	}

	kind := strings.Fields(tail)
	if len(kind) == 0 {
		return Proxy{}, errors.New("missing protocol on second line")
	}

	fields := strings.Fields(part)
	if len(fields) < 2 {
		return Proxy{}, fmt.Errorf("want ip and port after duration, got %d fields", len(fields))
	}
	return Proxy{Type: strings.ToLower(kind[0]), Address: hostPort(fields[0], fields[1])}, nil
}

func afterMarker(line string) (string, bool) {
	for _, marker := range durationMarkers {
		if i := strings.Index(line, marker); i >= 0 {
			return strings.TrimSpace(line[i+len(marker):]), true
		}
	}
	return "", false
}
