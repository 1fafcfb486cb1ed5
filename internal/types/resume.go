// Package types provides type definitions for structured data used throughout the resume studio.
package types

// ResumeData is the resume content rendered by the templates. It is owned by
// the form and upload collaborators and is never mutated by the engine.
type ResumeData struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"` // HTML
	Contact      Contact       `json:"contact"`
	Skills       []Skill       `json:"skills"`
	Experience   []Experience  `json:"experience"`
	Projects     []Project     `json:"projects"`
	Education    Education     `json:"education"`
	Achievements []Achievement `json:"achievements"`
}

// Contact holds the optional contact details shown in the details section.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Skill groups languages/tools under a domain such as "Frontend".
type Skill struct {
	Domain    string   `json:"domain"`
	Languages []string `json:"languages"`
}

// Experience is a single position.
type Experience struct {
	Company      string `json:"company"`
	Role         string `json:"role"`
	Technologies string `json:"technologies,omitempty"`
	Years        string `json:"years,omitempty"`
	Description  string `json:"description,omitempty"` // HTML
}

// Project is a single portfolio entry.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"` // HTML
	GitHub      string `json:"github,omitempty"`
	Demo        string `json:"demo,omitempty"`
}

// Education holds the college record plus secondary-school fields.
type Education struct {
	College        string `json:"college,omitempty"`
	Degree         string `json:"degree,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Location       string `json:"location,omitempty"`
	StartYear      string `json:"startYear,omitempty"`
	EndYear        string `json:"endYear,omitempty"`
	CGPA           string `json:"cgpa,omitempty"`
	School         string `json:"school,omitempty"`
	Board          string `json:"board,omitempty"`
	Percentage     string `json:"percentage,omitempty"`
	SchoolYear     string `json:"schoolYear,omitempty"`
}

// Achievement is a dated award or accomplishment.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"` // HTML
	Year        string `json:"year,omitempty"`
	Month       string `json:"month,omitempty"`
}

// Normalize replaces nil lists with empty ones so callers can always range
// over them. It returns the receiver for chaining.
func (r *ResumeData) Normalize() *ResumeData {
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	for i := range r.Skills {
		if r.Skills[i].Languages == nil {
			r.Skills[i].Languages = []string{}
		}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if r.Achievements == nil {
		r.Achievements = []Achievement{}
	}
	return r
}

// HasSchooling reports whether any secondary-school field is set.
func (e Education) HasSchooling() bool {
	return e.School != "" || e.Board != "" || e.Percentage != "" || e.SchoolYear != ""
}
