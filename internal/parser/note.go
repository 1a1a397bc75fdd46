package parser

// ParsedNote is a note captured from a single line: the title plus any tags.
type ParsedNote struct {
	Title string
	Tags  []string
}

// ParseNote reads "Idea for the garden #home,ideas".
func ParseNote(input string) ParsedNote {
	l := scan(input, nil)
	return ParsedNote{Title: l.text(), Tags: l.tags}
}
