package jobs

// SampleListings returns a fixed set of listings used when no source produced
// any results and sample data is enabled. Each call returns fresh copies.
func SampleListings() []*Listing {
	return []*Listing{
		{
			ID:             "sample-1",
			Title:          "Senior Frontend Developer",
			Company:        "TechCorp India",
			Description:    "Build responsive web applications with React and TypeScript. 5+ years of experience with modern frontend tooling, Next.js and CI/CD pipelines.",
			RequiredSkills: []string{"React", "TypeScript", "Next.js", "CI/CD"},
			SalaryRange:    "₹18,00,000 - ₹28,00,000",
			Experience:     "5+ years",
			Location:       "Bengaluru, Karnataka",
			Type:           DefaultType,
			Source:         "sample",
		},
		{
			ID:             "sample-2",
			Title:          "Backend Engineer",
			Company:        "CloudScale Systems",
			Description:    "Design and operate Node.js and Express services on AWS. 3 years of experience with PostgreSQL, MongoDB and Docker required.",
			RequiredSkills: []string{"Node.js", "Express", "AWS", "PostgreSQL", "MongoDB", "Docker"},
			SalaryRange:    "₹12,00,000 - ₹20,00,000",
			Experience:     "3+ years",
			Location:       "Pune, Maharashtra",
			Type:           DefaultType,
			Source:         "sample",
		},
		{
			ID:             "sample-3",
			Title:          "Python Developer",
			Company:        "DataWorks Analytics",
			Description:    "Develop data services in Python with Django and Flask. 2 years of experience and familiarity with Git workflows.",
			RequiredSkills: []string{"Python", "Django", "Flask", "Git"},
			SalaryRange:    "₹8,00,000 - ₹14,00,000",
			Experience:     "2+ years",
			Location:       "Hyderabad, Telangana",
			Type:           DefaultType,
			Source:         "sample",
		},
		{
			ID:             "sample-4",
			Title:          "DevOps Engineer",
			Company:        "InfraWorks",
			Description:    "Run Kubernetes clusters and Docker based delivery on AWS. 4 years of experience building CI/CD automation.",
			RequiredSkills: []string{"Kubernetes", "Docker", "AWS", "CI/CD"},
			SalaryRange:    "₹15,00,000+",
			Experience:     "4+ years",
			Location:       "Chennai, Tamil Nadu",
			Type:           DefaultType,
			Source:         "sample",
		},
		{
			ID:             "sample-5",
			Title:          "Java Backend Developer",
			Company:        "FinServe Technologies",
			Description:    "Build payment services with Java and Spring Boot. 6 years of experience with PostgreSQL and Git.",
			RequiredSkills: []string{"Java", "Spring Boot", "PostgreSQL", "Git"},
			SalaryRange:    "Up to ₹30,00,000",
			Experience:     "6+ years",
			Location:       "Mumbai, Maharashtra",
			Type:           DefaultType,
			Source:         "sample",
		},
		{
			ID:             "sample-6",
			Title:          "Junior Frontend Developer",
			Company:        "StartupHub",
			Description:    "Join a small team building Angular and Vue.js interfaces in JavaScript. 1 year of experience welcome.",
			RequiredSkills: []string{"Angular", "Vue.js", "JavaScript"},
			SalaryRange:    NotDisclosed,
			Experience:     "1+ years",
			Location:       "Remote",
			Type:           "Internship",
			Source:         "sample",
		},
	}
}
