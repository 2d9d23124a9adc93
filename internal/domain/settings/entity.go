package settings

import "time"

// Settings is the organisation-wide configuration. Exactly one row exists; it is created with
// Default values on first read.
type Settings struct {
	CompanyName  string
	WorkingHours WorkingHours
	Departments  []string
	Positions    map[string][]string // keyed by department
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WorkingHours holds HH:MM 24-hour wall clock times, Start before End.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Default is the configuration created when none is stored.
func Default() Settings {
	return Settings{
		CompanyName:  "Internship Program",
		WorkingHours: WorkingHours{Start: "09:00", End: "17:00"},
		Departments:  []string{"Engineering", "Design", "Marketing", "HR", "Finance"},
		Positions: map[string][]string{
			"Engineering": {"Backend Intern", "Frontend Intern", "Mobile Intern", "QA Intern", "DevOps Intern"},
			"Design":      {"UI/UX Intern", "Graphic Design Intern"},
			"Marketing":   {"Digital Marketing Intern", "Content Intern"},
			"HR":          {"Recruitment Intern", "People Operations Intern"},
			"Finance":     {"Accounting Intern", "Financial Analyst Intern"},
		},
	}
}

func (s Settings) HasDepartment(department string) bool {
	for _, d := range s.Departments {
		if d == department {
			return true
		}
	}
	return false
}

// AllowsPosition reports whether position is valid for department. A department without a
// configured position list accepts any position.
func (s Settings) AllowsPosition(department, position string) bool {
	positions := s.Positions[department]
	if len(positions) == 0 {
		return true
	}
	for _, p := range positions {
		if p == position {
			return true
		}
	}
	return false
}

// clone deep-copies the slices and map so a patch never aliases the source value.
func (s Settings) clone() Settings {
	next := s
	next.Departments = append([]string(nil), s.Departments...)
	next.Positions = make(map[string][]string, len(s.Positions))
	for dept, positions := range s.Positions {
		next.Positions[dept] = append([]string(nil), positions...)
	}
	return next
}
