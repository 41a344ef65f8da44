package entity

// EducationEntry is one parsed education record.
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Major       string `json:"major,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Raw         string `json:"raw"`
}

// Subfields counts the populated sub-fields, which drives the entry's
// confidence.
func (e EducationEntry) Subfields() int {
	n := 0
	for _, s := range []string{e.Degree, e.Major, e.Institution, e.Year, e.GPA} {
		if s != "" {
			n++
		}
	}
	return n
}

// Certification is one parsed certification record.
type Certification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Year   string `json:"year,omitempty"`
	ID     string `json:"id,omitempty"`
	Raw    string `json:"raw"`
}

// Subfields counts the populated sub-fields.
func (c Certification) Subfields() int {
	n := 0
	for _, s := range []string{c.Name, c.Issuer, c.Year, c.ID} {
		if s != "" {
			n++
		}
	}
	return n
}
