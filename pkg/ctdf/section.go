package ctdf

// Section is a single edge of a line between two adjacent stations.
// Sections are created and replaced by the owning Line only.
type Section struct {
	LineRef string `groups:"detailed"`

	UpStationRef   string `groups:"detailed"`
	DownStationRef string `groups:"detailed"`

	Distance int `groups:"detailed"`
	Duration int `groups:"detailed"`
}

func (s Section) validate() error {
	if s.Distance <= 0 || s.Duration <= 0 {
		return sectionError(ErrInvalidSection, s, "distance and duration must be positive")
	}
	if s.UpStationRef == "" || s.DownStationRef == "" {
		return sectionError(ErrInvalidSection, s, "both stations must be set")
	}
	if s.UpStationRef == s.DownStationRef {
		return sectionError(ErrInvalidSection, s, "up and down station are the same")
	}

	return nil
}
