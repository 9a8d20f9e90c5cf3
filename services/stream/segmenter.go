package stream

import (
	"strings"
)

// SectionMarker starts a line announcing a new named section of build output
const SectionMarker = "-----> "

// State is the streaming session's position in its lifecycle
type State int

const (
	StateStreaming State = iota
	StateSectionBoundary
	StateSucceeded
	StateFailed
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateStreaming:
		return "streaming"
	case StateSectionBoundary:
		return "section-boundary"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// Terminal is true for the states a session ends in
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateErrored
}

// Line is one line of build output; Index is its position in the transcript
type Line struct {
	Text  string
	Index int
}

// Section is a consecutive run of lines under the title of the marker that opened it;
// lines before the first marker form a section with an empty title
type Section struct {
	Title string
	Lines []Line
}

// Segmenter groups an ordered line sequence into sections in a single pass
type Segmenter struct {
	sections []Section
}

// Add appends line to the current section, or opens a new section when line is a marker
func (s *Segmenter) Add(line Line) State {

	if title, ok := SectionTitle(line.Text); ok {
		s.sections = append(s.sections, Section{Title: title})
		return StateSectionBoundary
	}

	if len(s.sections) == 0 {
		s.sections = append(s.sections, Section{})
	}
	current := &s.sections[len(s.sections)-1]
	current.Lines = append(current.Lines, line)

	return StateStreaming
}

// Current returns the section lines are currently added to
func (s *Segmenter) Current() (Section, bool) {
	if len(s.sections) == 0 {
		return Section{}, false
	}
	return s.sections[len(s.sections)-1], true
}

// Sections returns all sections seen so far
func (s *Segmenter) Sections() []Section {
	return s.sections
}

// Segment splits lines into sections
func Segment(lines []Line) []Section {
	segmenter := &Segmenter{}
	for _, l := range lines {
		segmenter.Add(l)
	}
	return segmenter.Sections()
}

// SectionTitle returns the title of a marker line
func SectionTitle(text string) (string, bool) {
	if !strings.HasPrefix(text, SectionMarker) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(text, SectionMarker)), true
}
