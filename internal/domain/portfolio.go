package domain

// Portfolio is the owner's static profile. It is loaded once and shared
// read-only between sessions.
type Portfolio struct {
	Profile         Profile      `json:"profile" yaml:"profile"`
	Summary         string       `json:"summary" yaml:"summary"`
	Skills          []string     `json:"skills" yaml:"skills"`
	TechnicalSkills []string     `json:"technicalSkills" yaml:"technicalSkills"`
	SoftSkills      []string     `json:"softSkills" yaml:"softSkills"`
	WorkExperience  []Experience `json:"workExperience" yaml:"workExperience"`
	Projects        []Project    `json:"projects" yaml:"projects"`
	Education       []Education  `json:"education" yaml:"education"`
	Certifications  []string     `json:"certifications" yaml:"certifications"`
	Contact         Contact      `json:"contact" yaml:"contact"`
}

type Profile struct {
	Name     string `json:"name" yaml:"name"`
	Role     string `json:"role" yaml:"role"`
	Location string `json:"location" yaml:"location"`
}

type Experience struct {
	Role    string   `json:"role" yaml:"role"`
	Company string   `json:"company" yaml:"company"`
	Date    string   `json:"date" yaml:"date"`
	Details []string `json:"details" yaml:"details"`
}

type Project struct {
	Name        string   `json:"name" yaml:"name"`
	Tech        []string `json:"tech,omitempty" yaml:"tech,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Role        string   `json:"role,omitempty" yaml:"role,omitempty"`
}

type Education struct {
	Degree   string `json:"degree" yaml:"degree"`
	College  string `json:"college" yaml:"college"`
	CGPA     string `json:"cgpa" yaml:"cgpa"`
	Duration string `json:"duration" yaml:"duration"`
}

type Contact struct {
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	GitHub   string `json:"github" yaml:"github"`
}
